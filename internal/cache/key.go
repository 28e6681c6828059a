// Package cache is the read-through query cache in front of the catalog backend.
// Entries are addressed by typed keys and dropped by tag, so a mutation only has
// to name the entity it touched.
package cache

import (
	"strings"
)

// Entity names a cached resource family
type Entity string

const (
	Products    Entity = "products"
	Variants    Entity = "variants"
	Inventory   Entity = "inventory"
	Categories  Entity = "categories"
	Brands      Entity = "brands"
	Collections Entity = "collections"
	Tags        Entity = "tags"
	Coupons     Entity = "coupons"
	Reviews     Entity = "reviews"
)

// Entities returns every entity in a fixed order
func Entities() []Entity {
	return []Entity{Products, Variants, Inventory, Categories, Brands, Collections, Tags, Coupons, Reviews}
}

// ParseEntity returns the entity named s
func ParseEntity(s string) (Entity, bool) {
	for _, e := range Entities() {
		if string(e) == s {
			return e, true
		}
	}
	return "", false
}

const (
	ScopeList   = "list"
	ScopeDetail = "detail"
	ScopeAll    = "all"
)

// Key identifies one cached query result
type Key struct {
	Entity Entity
	Scope  string
	ID     string
	Params string
}

// ListKey addresses one page of a list query; params is a canonical query string
func ListKey(e Entity, params string) Key {
	return Key{Entity: e, Scope: ScopeList, Params: params}
}

// DetailKey addresses a single record
func DetailKey(e Entity, id string) Key {
	return Key{Entity: e, Scope: ScopeDetail, ID: id}
}

// AllKey addresses an unpaginated read of the whole entity, e.g. the variant catalog
func AllKey(e Entity) Key {
	return Key{Entity: e, Scope: ScopeAll}
}

func (k Key) String() string {
	parts := []string{string(k.Entity), k.Scope}
	if k.ID != "" {
		parts = append(parts, k.ID)
	}
	if k.Params != "" {
		parts = append(parts, k.Params)
	}
	return strings.Join(parts, ":")
}

// Tags are the invalidation handles an entry is stored under
func (k Key) Tags() []Tag {
	tags := []Tag{EntityTag(k.Entity)}
	if k.ID != "" {
		tags = append(tags, RecordTag(k.Entity, k.ID))
	}
	return tags
}

// Tag groups cache entries that are invalidated together
type Tag string

func EntityTag(e Entity) Tag {
	return Tag("entity:" + string(e))
}

func RecordTag(e Entity, id string) Tag {
	return Tag("record:" + string(e) + ":" + id)
}

// Entity returns the entity a tag belongs to
func (t Tag) Entity() (Entity, bool) {
	parts := strings.SplitN(string(t), ":", 3)
	if len(parts) < 2 {
		return "", false
	}
	return ParseEntity(parts[1])
}

// dependents lists, for each mutated entity, every entity whose cached reads may
// embed it. Products embed variants and all four classifications; inventory rows
// are built from products.
var dependents = map[Entity][]Entity{
	Products:    {Products, Inventory},
	Inventory:   {Inventory, Products},
	Variants:    {Variants, Products, Inventory},
	Categories:  {Categories, Products},
	Brands:      {Brands, Products},
	Collections: {Collections, Products},
	Tags:        {Tags, Products},
	Coupons:     {Coupons},
	Reviews:     {Reviews},
}

// TagsFor returns the tags to drop after records ids of e were mutated
func TagsFor(e Entity, ids ...string) []Tag {
	deps, ok := dependents[e]
	if !ok {
		deps = []Entity{e}
	}
	tags := make([]Tag, 0, len(deps)+len(ids))
	for _, d := range deps {
		tags = append(tags, EntityTag(d))
	}
	for _, id := range ids {
		if id != "" {
			tags = append(tags, RecordTag(e, id))
		}
	}
	return tags
}
