package form

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/shopspring/decimal"
)

// ImageField is the multipart field every product image is appended under
const ImageField = "images"

// ProductForm is what the product create and edit screens submit
type ProductForm struct {
	Title          string              `json:"title" binding:"notblank,max=200"`
	Description    string              `json:"description"`
	BasePrice      decimal.Decimal     `json:"basePrice" binding:"gt=0"`
	ComparePrice   *decimal.Decimal    `json:"comparePrice"`
	Status         model.ProductStatus `json:"status" binding:"omitempty,oneof=draft active archived"`
	Brand          string              `json:"brand"`
	Categories     []string            `json:"categories"`
	Collections    []string            `json:"collections"`
	Tags           []string            `json:"tags"`
	Variants       []string            `json:"variants" binding:"dive,notblank"`
	SKUs           []model.SKU         `json:"skus" binding:"dive"`
	Features       []string            `json:"features" binding:"max=20,dive,notblank"`
	TrackInventory bool                `json:"trackInventory"`
	// KeepImages lists the public IDs of existing images that survive an edit
	KeepImages   []string `json:"keepImages"`
	PrimaryImage string   `json:"primaryImage"`
}

// FromProduct prefills the edit form from a stored product
func FromProduct(p *model.Product) ProductForm {
	f := ProductForm{
		Title:          p.Title,
		Description:    p.Description,
		BasePrice:      p.BasePrice,
		ComparePrice:   p.ComparePrice,
		Status:         p.Status,
		Categories:     model.RefIDs(p.Categories),
		Collections:    model.RefIDs(p.Collections),
		Tags:           model.RefIDs(p.Tags),
		Variants:       p.VariantIDs(),
		SKUs:           p.SKUs,
		Features:       p.Features,
		TrackInventory: p.TrackInventory,
	}
	if p.Brand != nil {
		f.Brand = p.Brand.ID
	}
	for _, img := range p.Images {
		f.KeepImages = append(f.KeepImages, img.PublicID)
	}
	if primary := p.PrimaryImage(); primary != nil {
		f.PrimaryImage = primary.PublicID
	}
	return f
}

// ValidateProduct checks the whole form at submit time: the binding tags, then
// the catalog rules tags cannot express. variants may be nil, in which case
// option membership of SKU attributes is not checked.
func ValidateProduct(f ProductForm, variants *catalog.VariantCatalog) FieldErrors {
	errs := check(f)

	if variants != nil {
		for _, vid := range f.Variants {
			if _, ok := variants.Get(vid); !ok {
				errs.Add("variants", fmt.Sprintf("Unknown variant %s", vid))
				break
			}
		}
	}

	seenCodes := make(map[string]bool, len(f.SKUs))
	for i, s := range f.SKUs {
		code := strings.TrimSpace(s.SKUCode)
		if code == "" {
			continue
		}
		if seenCodes[code] {
			errs.Add(fmt.Sprintf("skus[%d].skuCode", i), "SKU code must be unique")
		}
		seenCodes[code] = true
	}

	draft := model.Product{SKUs: f.SKUs}
	for _, vid := range f.Variants {
		draft.Variants = append(draft.Variants, model.VariantRef{ID: vid})
	}
	if err := catalog.ValidateSKUAttributes(&draft, variants); err != nil {
		errs.Add("skus", err.Error())
	}

	return errs
}

// Field is one plain multipart form field
type Field struct {
	Name  string
	Value string
}

// Upload is an image file selected in the form
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ProductPayload is the backend's multipart shape for product create and update
type ProductPayload struct {
	Fields []Field
	Files  []Upload
}

// Get returns the value of the named field
func (p ProductPayload) Get(name string) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// BuildProductPayload flattens the form for multipart transport: scalars as
// plain fields, structured fields as JSON strings, uploads under ImageField.
// keepImages is only sent on edit.
func BuildProductPayload(f ProductForm, uploads []Upload, editing bool) (ProductPayload, error) {
	p := ProductPayload{Files: uploads}
	add := func(name, value string) {
		p.Fields = append(p.Fields, Field{Name: name, Value: value})
	}
	addJSON := func(name string, v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		add(name, string(data))
		return nil
	}

	status := f.Status
	if status == "" {
		status = model.ProductStatusDraft
	}

	add("title", strings.TrimSpace(f.Title))
	add("description", f.Description)
	add("basePrice", f.BasePrice.String())
	if f.ComparePrice != nil && !f.ComparePrice.IsZero() {
		add("comparePrice", f.ComparePrice.String())
	}
	add("status", string(status))
	if f.Brand != "" {
		add("brand", f.Brand)
	}
	add("trackInventory", fmt.Sprintf("%t", f.TrackInventory))

	structured := []struct {
		name  string
		value interface{}
	}{
		{"categories", nonNil(f.Categories)},
		{"collections", nonNil(f.Collections)},
		{"tags", nonNil(f.Tags)},
		{"variants", nonNil(f.Variants)},
		{"features", trimmed(f.Features)},
		{"skus", skusOrEmpty(f.SKUs)},
	}
	for _, s := range structured {
		if err := addJSON(s.name, s.value); err != nil {
			return ProductPayload{}, err
		}
	}

	if f.PrimaryImage != "" {
		add("primaryImage", f.PrimaryImage)
	}
	if editing {
		if err := addJSON("keepImages", nonNil(f.KeepImages)); err != nil {
			return ProductPayload{}, err
		}
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func trimmed(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func skusOrEmpty(s []model.SKU) []model.SKU {
	if s == nil {
		return []model.SKU{}
	}
	return s
}
