package cart

import (
	"github.com/Iphycodes/odg/internal/catalog"
	"github.com/Iphycodes/odg/pkg/enums"
)

// Entry is a persisted cart line: item identity plus requested quantity.
// The JSON shape is the storage format, so field names stay stable.
type Entry struct {
	ItemID   string `json:"id"`
	Quantity int    `json:"quantity"`
}

// ResolvedItem is a cart entry joined against the live catalog. MaxQuantity
// mirrors the item's stock quantity; nil means unlimited.
type ResolvedItem struct {
	ItemID      string              `json:"id"`
	Name        string              `json:"name"`
	UnitPrice   int64               `json:"unit_price"`
	Quantity    int                 `json:"quantity"`
	MaxQuantity *int                `json:"max_quantity,omitempty"`
	ImageURL    string              `json:"image_url"`
	Condition   enums.ItemCondition `json:"condition"`
	SellerName  string              `json:"seller_name"`
	Negotiable  bool                `json:"negotiable"`
}

// Subtotal returns unit price times quantity, in kobo.
func (r ResolvedItem) Subtotal() int64 {
	return r.UnitPrice * int64(r.Quantity)
}

// Resolve joins an entry against a catalog item.
func Resolve(entry Entry, item *catalog.Item) ResolvedItem {
	return ResolvedItem{
		ItemID:      item.ID,
		Name:        item.Name,
		UnitPrice:   item.UnitPrice,
		Quantity:    entry.Quantity,
		MaxQuantity: item.StockQuantity,
		ImageURL:    item.ImageURL,
		Condition:   item.Condition,
		SellerName:  item.SellerName,
		Negotiable:  item.Negotiable,
	}
}
