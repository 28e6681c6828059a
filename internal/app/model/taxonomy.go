package model

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Parent      *Ref   `json:"parent,omitempty"`
	Image       *Image `json:"image,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Logo        *Image `json:"logo,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
