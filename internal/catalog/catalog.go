// Package catalog holds the static menu: items, category labels, and the
// business contact details. The data is parsed once at startup and is
// read-only for the lifetime of the process.
package catalog

import (
	_ "embed"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed data/menu.json
var menuData []byte

// Item is a single menu entry. Price is in minor currency units and the
// naira carries no fractional subunit, so it is a whole number of naira.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Popular     bool   `json:"popular,omitempty"`
}

// Category is a menu section label.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Business describes the storefront owner. WhatsApp is the international
// phone number as bare digits, the form wa.me expects.
type Business struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	Location  string `json:"location"`
	Hours     string `json:"hours"`
	Tagline   string `json:"tagline"`
}

// Catalog is the loaded menu. All accessors return copies; callers never
// observe or mutate internal state.
type Catalog struct {
	business   Business
	categories []Category
	items      []Item
	byID       map[string]Item
}

type menuFile struct {
	Business   Business   `json:"business"`
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
}

// Load parses the embedded menu data.
func Load() (*Catalog, error) {
	return parse(menuData)
}

// LoadFile parses a menu data file from disk, overriding the embedded one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read menu data file")
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var f menuFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse menu data")
	}

	byID := make(map[string]Item, len(f.Items))
	for _, it := range f.Items {
		if it.ID == "" {
			return nil, errors.Errorf("menu item %q has no id", it.Name)
		}
		if it.Price <= 0 {
			return nil, errors.Errorf("menu item %q has non-positive price %d", it.ID, it.Price)
		}
		if _, dup := byID[it.ID]; dup {
			return nil, errors.Errorf("duplicate menu item id %q", it.ID)
		}
		byID[it.ID] = it
	}

	return &Catalog{
		business:   f.Business,
		categories: f.Categories,
		items:      f.Items,
		byID:       byID,
	}, nil
}

// Business returns the storefront owner details.
func (c *Catalog) Business() Business { return c.business }

// Categories returns the category labels in menu order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Items returns all menu items in menu order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Find looks an item up by id.
func (c *Catalog) Find(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// ByCategory returns the items in one category, in menu order.
func (c *Catalog) ByCategory(categoryID string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Category == categoryID {
			out = append(out, it)
		}
	}
	return out
}

// Popular returns the items flagged as customer favorites.
func (c *Catalog) Popular() []Item {
	var out []Item
	for _, it := range c.items {
		if it.Popular {
			out = append(out, it)
		}
	}
	return out
}

// Search matches the query against item names and descriptions,
// case-insensitively. An empty query matches everything.
func (c *Catalog) Search(query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Items()
	}
	var out []Item
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), query) ||
			strings.Contains(strings.ToLower(it.Description), query) {
			out = append(out, it)
		}
	}
	return out
}

// Sort keys accepted by Sort. The zero value leaves menu order untouched.
const (
	SortDefault   = ""
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
	SortPopular   = "popular"
)

// Sort orders items by the given key. Sorting is stable so equal entries
// keep their menu order. Unknown keys behave like SortDefault.
func Sort(items []Item, key string) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popular && !out[j].Popular })
	}
	return out
}
