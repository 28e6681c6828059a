package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The catalog backend expects prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// Ref is a reference to another catalog entity. The backend sends either a
// bare ID string or a populated object.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// VariantRef is a product's reference to a Variant, in the product's declared order
type VariantRef = Ref

func (r *Ref) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = Ref{ID: id}
		return nil
	}
	var aux struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = aux.ID
	if r.ID == "" {
		r.ID = aux.MongoID
	}
	r.Name = aux.Name
	if r.Name == "" {
		r.Name = aux.Title
	}
	return nil
}

// RefIDs returns the IDs of refs in order
func RefIDs(refs []Ref) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}

type Product struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	BasePrice      decimal.Decimal  `json:"basePrice"`
	ComparePrice   *decimal.Decimal `json:"comparePrice,omitempty"`
	Status         ProductStatus    `json:"status"`
	Categories     []Ref            `json:"categories"`
	Collections    []Ref            `json:"collections"`
	Tags           []Ref            `json:"tags"`
	Brand          *Ref             `json:"brand,omitempty"`
	Variants       []VariantRef     `json:"variants"`
	SKUs           []SKU            `json:"skus"`
	Images         []Image          `json:"images"`
	TrackInventory bool             `json:"trackInventory"`
	Features       []string         `json:"features"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// SKU is a stockable, priceable unit for one combination of variant options
type SKU struct {
	ID                string          `json:"id"`
	SKUCode           string          `json:"skuCode"`
	Price             decimal.Decimal `json:"price" binding:"gte=0"`
	Stock             int             `json:"stock" binding:"gte=0"`
	LowStockThreshold int             `json:"lowStockThreshold" binding:"gte=0"`
	AllowPreOrder     bool            `json:"allowPreOrder"`
	PreOrderStock     int             `json:"preOrderStock" binding:"gte=0"`
	Barcode           *string         `json:"barcode,omitempty"`
	Attributes        []Attribute     `json:"attributes"`
}

// Attribute pins one variant of a SKU to one of its options
type Attribute struct {
	VariantID string `json:"variantId"`
	OptionID  string `json:"optionId"`
}

type Image struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// VariantIDs returns the IDs of the product's variants in declared order
func (p *Product) VariantIDs() []string {
	return RefIDs(p.Variants)
}

// PrimaryImage returns the image flagged primary, or the first image when none is.
func (p *Product) PrimaryImage() *Image {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// SKU returns the SKU with the given ID
func (p *Product) SKU(id string) (*SKU, bool) {
	for i := range p.SKUs {
		if p.SKUs[i].ID == id {
			return &p.SKUs[i], true
		}
	}
	return nil, false
}

// EffectivePrice is the SKU's own price, or the product base price when the SKU has none
func (p *Product) EffectivePrice(sku *SKU) decimal.Decimal {
	if sku == nil || sku.Price.IsZero() {
		return p.BasePrice
	}
	return sku.Price
}
