package cart

import (
	"errors"
	"fmt"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/pricing"
)

// ErrInvalidItem is returned when a mutation is rejected at the boundary;
// the cart state is left untouched.
var ErrInvalidItem = errors.New("cart: invalid line item")

// Selection is one chosen customization option on a line.
type Selection struct {
	CustomizationID uint   `json:"customizationId"`
	OptionID        uint   `json:"optionId"`
	Label           string `json:"label,omitempty"`
	FreeText        string `json:"freeText,omitempty"`
	PriceDelta      int64  `json:"priceDelta"`
}

// LineItem is one entry in the cart. UnitPrice already includes the
// selection price deltas. The line total is always derived from unit price
// and quantity, never stored, so the two can not drift apart.
//
// A line's identity is the tuple (menu item id, sorted selection option
// ids), but adds never merge on it: every add appends a fresh line with its
// own id, matching the storefront behavior.
type LineItem struct {
	ID         string      `json:"id"`
	MenuItemID uint        `json:"menuItemId"`
	Name       string      `json:"name"`
	Quantity   int         `json:"quantity"`
	UnitPrice  int64       `json:"unitPrice"`
	Selections []Selection `json:"selections,omitempty"`
	Note       string      `json:"note,omitempty"`
}

func (li LineItem) Total() int64 {
	return pricing.LineTotal(li.UnitPrice, li.Quantity)
}

func (li LineItem) validate() error {
	if li.MenuItemID == 0 {
		return fmt.Errorf("%w: missing menu item", ErrInvalidItem)
	}
	if li.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
	}
	if li.UnitPrice < 0 {
		return fmt.Errorf("%w: negative unit price", ErrInvalidItem)
	}
	return nil
}

func pricingLines(items []LineItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		lines[i] = pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}
	return lines
}
