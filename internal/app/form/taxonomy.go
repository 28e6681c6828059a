package form

import (
	"strings"

	"github.com/ikkim/catalog-admin/internal/app/model"
)

// TaxonomyForm is the shared shape of the category, brand, collection and tag screens
type TaxonomyForm struct {
	Name        string `json:"name" binding:"notblank,max=100"`
	Slug        string `json:"slug" binding:"omitempty,slug"`
	Description string `json:"description" binding:"max=2000"`
	Parent      string `json:"parent"`
	Website     string `json:"website" binding:"omitempty,http_url"`
	IsActive    *bool  `json:"isActive"`
}

// Normalize trims input and derives a slug from the name when none is given
func (f TaxonomyForm) Normalize() TaxonomyForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
	f.Website = strings.TrimSpace(f.Website)
	if f.Slug == "" {
		f.Slug = Slugify(f.Name)
	}
	return f
}

func ValidateCategory(f TaxonomyForm, selfID string) FieldErrors {
	errs := check(f)
	if selfID != "" && f.Parent == selfID {
		errs.Add("parent", "A category cannot be its own parent")
	}
	return errs
}

func ValidateBrand(f TaxonomyForm) FieldErrors {
	return check(f)
}

func ValidateCollection(f TaxonomyForm) FieldErrors {
	return check(f)
}

func ValidateTag(f TaxonomyForm) FieldErrors {
	return check(f)
}

func active(p *bool) bool {
	return p == nil || *p
}

func (f TaxonomyForm) Category(id string) model.Category {
	c := model.Category{ID: id, Name: f.Name, Slug: f.Slug, Description: f.Description, IsActive: active(f.IsActive)}
	if f.Parent != "" {
		c.Parent = &model.Ref{ID: f.Parent}
	}
	return c
}

func (f TaxonomyForm) Brand(id string) model.Brand {
	return model.Brand{ID: id, Name: f.Name, Slug: f.Slug, Description: f.Description, Website: f.Website, IsActive: active(f.IsActive)}
}

func (f TaxonomyForm) Collection(id string) model.Collection {
	return model.Collection{ID: id, Name: f.Name, Slug: f.Slug, Description: f.Description, IsActive: active(f.IsActive)}
}

func (f TaxonomyForm) Tag(id string) model.Tag {
	return model.Tag{ID: id, Name: f.Name, Slug: f.Slug}
}
