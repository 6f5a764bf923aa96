package repository

import (
	"errors"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

// CartRepository manages the server-held cart rows the synchronizer
// mirrors each user's live cart into.
type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

// GetCartWithItems returns the user's cart, empty rather than an error
// when none exists yet.
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Selections").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}
	return &c, err
}

// PullLines loads the mirrored cart as live line items, used to seed a
// context that has no snapshot yet.
func (r *CartRepository) PullLines(userID uint) ([]cart.LineItem, error) {
	c, err := r.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	lines := make([]cart.LineItem, 0, len(c.Items))
	for _, row := range c.Items {
		line := cart.LineItem{
			ID:         row.LineID,
			MenuItemID: row.MenuItemID,
			Name:       row.Name,
			Quantity:   row.Qty,
			UnitPrice:  row.UnitPrice,
			Note:       row.Note,
		}
		for _, sel := range row.Selections {
			line.Selections = append(line.Selections, cart.Selection{
				CustomizationID: sel.CustomizationID,
				OptionID:        sel.CustomizationOptionID,
				Label:           sel.Label,
				FreeText:        sel.FreeText,
				PriceDelta:      sel.PriceDelta,
			})
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// PushLines replaces the mirrored cart with the given lines. The whole
// swap runs in one transaction so a reader never sees half a cart.
func (r *CartRepository) PushLines(userID uint, lines []cart.LineItem) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		c, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		if err := deleteCartItems(tx, c.ID); err != nil {
			return err
		}
		for _, line := range lines {
			row := entity.CartItem{
				CartID:     c.ID,
				LineID:     line.ID,
				MenuItemID: line.MenuItemID,
				Name:       line.Name,
				Qty:        line.Quantity,
				UnitPrice:  line.UnitPrice,
				Total:      line.Total(),
				Note:       line.Note,
			}
			for _, sel := range line.Selections {
				row.Selections = append(row.Selections, entity.CartItemSelection{
					CustomizationID:       sel.CustomizationID,
					CustomizationOptionID: sel.OptionID,
					Label:                 sel.Label,
					FreeText:              sel.FreeText,
					PriceDelta:            sel.PriceDelta,
				})
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearByUser empties the mirrored cart, called after checkout.
func (r *CartRepository) ClearByUser(tx *gorm.DB, userID uint) error {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return deleteCartItems(tx, c.ID)
}

func getOrCreateCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// Hard deletes: the mirror is rewritten on every push, soft-deleted rows
// would pile up for nothing.
func deleteCartItems(tx *gorm.DB, cartID uint) error {
	if err := tx.Exec(`
		DELETE FROM cart_item_selections
		 WHERE cart_item_id IN (SELECT id FROM cart_items WHERE cart_id = ?)
	`, cartID).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}
