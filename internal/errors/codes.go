package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// The dashboard maps its messages from these codes

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // missing or rejected token
	AuthTokenMissing = "AUTH_TOKEN_MISSING"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"
	SKUNotFound     = "SKU_NOT_FOUND"

	// ==================== Variants (VARIANT_) ====================
	VariantNotFound = "VARIANT_NOT_FOUND"
	VariantInUse    = "VARIANT_IN_USE" // still declared by a product

	// ==================== Classification ====================
	CategoryNotFound   = "CATEGORY_NOT_FOUND"
	BrandNotFound      = "BRAND_NOT_FOUND"
	CollectionNotFound = "COLLECTION_NOT_FOUND"
	TagNotFound        = "TAG_NOT_FOUND"

	// ==================== Coupons (COUPON_) ====================
	CouponNotFound = "COUPON_NOT_FOUND"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound = "REVIEW_NOT_FOUND"

	// ==================== Search (SEARCH_) ====================
	SearchUnsupported = "SEARCH_UNSUPPORTED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Bulk (BULK_) ====================
	BulkPartialFailure = "BULK_PARTIAL_FAILURE"
	BulkFailed         = "BULK_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API" // catalog backend unreachable or misbehaving
	InternalTimeout     = "INTERNAL_TIMEOUT"
	InternalConfigError = "INTERNAL_CONFIG_ERROR"
)
