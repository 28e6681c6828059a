package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/catalog-admin/internal/errors"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/internal/storage"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// Presigner issues direct-to-storage upload URLs
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error)
}

type UploadController struct {
	storage Presigner
}

func NewUploadController(storage Presigner) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"` // products (default) or brands
}

// GeneratePresignedURL generates a presigned URL for uploading an image to S3
// POST /api/v1/uploads/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GeneratePresignedURLRequest
	if !bindJSON(c, &req, "generate presigned url") {
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = storage.FolderProducts
	}

	response, err := ctrl.storage.GeneratePresignedURL(c.Request.Context(), req.Filename, req.ContentType, folder)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidContentType):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		case errors.Is(err, storage.ErrInvalidFolder):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Folder must be products or brands")
		default:
			log.Error("Failed to generate presigned URL", err, logger.Fields{
				"filename":     req.Filename,
				"content_type": req.ContentType,
				"folder":       folder,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare the upload")
		}
		return
	}

	log.Info("Presigned URL generated successfully", logger.Fields{
		"content_type": req.ContentType,
		"folder":       folder,
		"key":          response.Key,
	})

	c.JSON(http.StatusOK, gin.H{
		"upload_url": response.UploadURL,
		"file_url":   response.FileURL,
		"key":        response.Key,
		"expires_at": response.ExpiresAt,
	})
}
