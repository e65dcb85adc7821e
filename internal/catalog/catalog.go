package catalog

import (
	"strings"

	"github.com/Iphycodes/odg/pkg/enums"
)

// Item is a sellable catalog entry. Prices are kobo. A nil StockQuantity
// means unlimited availability.
type Item struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	Condition     enums.ItemCondition `json:"condition"`
	SellerName    string              `json:"seller_name"`
	ImageURL      string              `json:"image_url"`
	UnitPrice     int64               `json:"unit_price"`
	Negotiable    bool                `json:"negotiable"`
	StockQuantity *int                `json:"stock_quantity,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
}

// InStock reports whether the item can currently be purchased.
func (i *Item) InStock() bool {
	return i.StockQuantity == nil || *i.StockQuantity > 0
}

// Finder is the read-only catalog lookup the cart and checkout pipelines
// join against. The in-memory store below satisfies it; an HTTP-backed
// catalog could be swapped in without touching the consumers.
type Finder interface {
	FindItemByID(id string) (*Item, bool)
}

// Store is a static, read-only item catalog.
type Store struct {
	items []Item
	byID  map[string]*Item
}

// NewStore indexes the provided items.
func NewStore(items []Item) *Store {
	s := &Store{
		items: items,
		byID:  make(map[string]*Item, len(items)),
	}
	for i := range s.items {
		s.byID[s.items[i].ID] = &s.items[i]
	}
	return s
}

// FindItemByID returns the item for the given id, if present.
func (s *Store) FindItemByID(id string) (*Item, bool) {
	item, ok := s.byID[id]
	return item, ok
}

// All returns every catalog item in seed order.
func (s *Store) All() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Query       string              `json:"q,omitempty"`
	Category    string              `json:"category,omitempty"`
	Condition   enums.ItemCondition `json:"condition,omitempty"`
	MinPrice    *int64              `json:"min_price,omitempty"`
	MaxPrice    *int64              `json:"max_price,omitempty"`
	InStockOnly bool                `json:"in_stock_only,omitempty"`
}

// List returns items matching the filters. Text matching is plain
// case-insensitive substring containment over name, description and tags;
// there is no ranking.
func (s *Store) List(filters ListFilters) []Item {
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	category := strings.ToLower(strings.TrimSpace(filters.Category))

	var out []Item
	for _, item := range s.items {
		if category != "" && strings.ToLower(item.Category) != category {
			continue
		}
		if filters.Condition != "" && item.Condition != filters.Condition {
			continue
		}
		if filters.MinPrice != nil && item.UnitPrice < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && item.UnitPrice > *filters.MaxPrice {
			continue
		}
		if filters.InStockOnly && !item.InStock() {
			continue
		}
		if query != "" && !matchesQuery(&item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item *Item, query string) bool {
	if strings.Contains(strings.ToLower(item.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
