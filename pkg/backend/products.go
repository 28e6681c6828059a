package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

// StockUpdate sets the absolute stock of one SKU
type StockUpdate struct {
	Stock  int    `json:"stock"`
	Reason string `json:"reason,omitempty"`
	Note   string `json:"note,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context, q model.ListQuery) (model.Page[model.Product], error) {
	return listEntities[model.Product](ctx, c, "/products", "products", q)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return getEntity[model.Product](ctx, c, "/products/"+escape(id), "product")
}

// CreateProduct posts a multipart product form
func (c *Client) CreateProduct(ctx context.Context, form Multipart) (*model.Product, error) {
	body, err := c.doMultipart(ctx, http.MethodPost, "/products", form)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return decodeEntity[model.Product](body, "product")
}

// UpdateProduct replaces a product with a multipart product form
func (c *Client) UpdateProduct(ctx context.Context, id string, form Multipart) (*model.Product, error) {
	body, err := c.doMultipart(ctx, http.MethodPut, "/products/"+escape(id), form)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return decodeEntity[model.Product](body, "product")
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return deleteEntity(ctx, c, "/products/"+escape(id), "product")
}

// UpdateStock writes the absolute stock of one SKU and returns the updated product
func (c *Client) UpdateStock(ctx context.Context, productID, skuID string, update StockUpdate) (*model.Product, error) {
	path := fmt.Sprintf("/products/%s/skus/%s/stock", escape(productID), escape(skuID))
	body, err := c.doJSON(ctx, http.MethodPut, path, nil, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock of %s/%s: %w", productID, skuID, err)
	}
	return decodeEntity[model.Product](body, "product")
}
