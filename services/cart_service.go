package services

import (
	"context"
	"errors"
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/pricing"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

// CartService validates storefront cart requests against the menu and
// applies them to the user's live cart session.
type CartService struct {
	Manager  *cart.Manager
	MenuRepo *repository.MenuRepository
}

func NewCartService(manager *cart.Manager, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{Manager: manager, MenuRepo: menuRepo}
}

// ----- DTOs from Controller -----

type CartSelectionIn struct {
	OptionID uint   `json:"optionId" binding:"required"`
	FreeText string `json:"freeText" binding:"max=200"`
}

type AddCartItemIn struct {
	MenuItemID uint              `json:"menuItemId" binding:"required"`
	Quantity   int               `json:"quantity" binding:"required,gt=0"`
	Note       string            `json:"note" binding:"max=300"`
	Selections []CartSelectionIn `json:"selections" binding:"dive"`
}

type UpdateCartItemIn struct {
	Quantity *int    `json:"quantity"`
	Note     *string `json:"note" binding:"omitempty,max=300"`
}

// CartView is what every cart endpoint responds with: the lines plus the
// derived totals, so the storefront never does money math.
type CartView struct {
	Items         []cart.LineItem `json:"items"`
	TotalItems    int             `json:"totalItems"`
	Totals        pricing.Totals  `json:"totals"`
	PersistFailed bool            `json:"persistFailed"`
	SyncState     cart.SyncState  `json:"syncState"`
}

type SyncStatusOut struct {
	State         cart.SyncState `json:"state"`
	LastError     string         `json:"lastError,omitempty"`
	LastSyncAt    *time.Time     `json:"lastSyncAt,omitempty"`
	LastSyncError string         `json:"lastSyncError,omitempty"`
}

func (s *CartService) View(ctx context.Context, userID uint) *CartView {
	sess := s.Manager.Session(ctx, userID)
	return s.viewOf(sess)
}

// AddItem prices the request against the menu and appends a line. The menu
// item must exist and be available, every selection must belong to one of
// the item's customization groups, and group min/max rules must hold. The
// line's unit price is the base price plus the selected option deltas.
func (s *CartService) AddItem(ctx context.Context, userID uint, in *AddCartItemIn) (*CartView, error) {
	item, err := s.MenuRepo.FindByID(in.MenuItemID)
	if err != nil {
		return nil, errors.New("menu item not found")
	}
	if !item.IsAvailable {
		return nil, errors.New("menu item is not available")
	}

	selections, err := resolveSelections(item, in.Selections)
	if err != nil {
		return nil, err
	}

	unit := item.Price
	for _, sel := range selections {
		unit += sel.PriceDelta
	}

	sess := s.Manager.Session(ctx, userID)
	_, err = sess.Store.AddItem(ctx, cart.LineItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   in.Quantity,
		UnitPrice:  unit,
		Selections: selections,
		Note:       in.Note,
	})
	if err != nil && !errors.Is(err, cart.ErrPersistFailed) {
		return nil, err
	}
	return s.viewOf(sess), nil
}

// UpdateItem changes quantity and/or note on a line. Quantity zero or less
// removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID uint, lineID string, in *UpdateCartItemIn) (*CartView, error) {
	sess := s.Manager.Session(ctx, userID)
	if in.Quantity != nil {
		if err := sess.Store.UpdateQuantity(ctx, lineID, *in.Quantity); err != nil && !errors.Is(err, cart.ErrPersistFailed) {
			return nil, err
		}
	}
	if in.Note != nil {
		if err := sess.Store.UpdateNote(ctx, lineID, *in.Note); err != nil && !errors.Is(err, cart.ErrPersistFailed) {
			return nil, err
		}
	}
	return s.viewOf(sess), nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID uint, lineID string) (*CartView, error) {
	sess := s.Manager.Session(ctx, userID)
	if err := sess.Store.RemoveItem(ctx, lineID); err != nil && !errors.Is(err, cart.ErrPersistFailed) {
		return nil, err
	}
	return s.viewOf(sess), nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) (*CartView, error) {
	sess := s.Manager.Session(ctx, userID)
	if err := sess.Store.Clear(ctx); err != nil && !errors.Is(err, cart.ErrPersistFailed) {
		return nil, err
	}
	return s.viewOf(sess), nil
}

// Flush retries a failed persist without touching the items.
func (s *CartService) Flush(ctx context.Context, userID uint) (*CartView, error) {
	sess := s.Manager.Session(ctx, userID)
	if err := sess.Store.Flush(ctx); err != nil {
		return s.viewOf(sess), err
	}
	return s.viewOf(sess), nil
}

// SyncNow pushes the cart to its server mirror immediately instead of
// waiting for the next interval.
func (s *CartService) SyncNow(ctx context.Context, userID uint) error {
	return s.Manager.Session(ctx, userID).Sync.SyncNow(ctx)
}

// RetryInit re-runs initialization after a failed one.
func (s *CartService) RetryInit(ctx context.Context, userID uint) error {
	return s.Manager.Session(ctx, userID).Sync.RetryInitialization(ctx)
}

func (s *CartService) SyncStatus(ctx context.Context, userID uint) *SyncStatusOut {
	sess := s.Manager.Session(ctx, userID)
	out := &SyncStatusOut{State: sess.Sync.State()}
	if err := sess.Sync.LastError(); err != nil {
		out.LastError = err.Error()
	}
	if at, err := sess.Sync.LastSync(); err != nil {
		out.LastSyncError = err.Error()
	} else if !at.IsZero() {
		out.LastSyncAt = &at
	}
	return out
}

func (s *CartService) viewOf(sess *cart.Session) *CartView {
	return &CartView{
		Items:         sess.Store.Items(),
		TotalItems:    sess.Store.TotalItems(),
		Totals:        sess.Store.Totals(),
		PersistFailed: sess.Store.PersistErr() != nil,
		SyncState:     sess.Sync.State(),
	}
}

// resolveSelections checks the chosen options against the item's
// customization groups and turns them into cart selections.
func resolveSelections(item *entity.MenuItem, in []CartSelectionIn) ([]cart.Selection, error) {
	options := make(map[uint]*entity.CustomizationOption)
	for gi := range item.Customizations {
		for oi := range item.Customizations[gi].Options {
			opt := &item.Customizations[gi].Options[oi]
			options[opt.ID] = opt
		}
	}

	chosen := make(map[uint]int) // picks per customization id
	var out []cart.Selection
	seen := make(map[uint]bool, len(in))
	for _, sel := range in {
		if seen[sel.OptionID] {
			return nil, errors.New("duplicate selection")
		}
		seen[sel.OptionID] = true

		opt, ok := options[sel.OptionID]
		if !ok {
			return nil, errors.New("selection does not belong to this menu item")
		}
		if !opt.IsAvailable {
			return nil, errors.New("selected option is not available")
		}
		chosen[opt.CustomizationID]++
		out = append(out, cart.Selection{
			CustomizationID: opt.CustomizationID,
			OptionID:        opt.ID,
			Label:           opt.Label,
			FreeText:        sel.FreeText,
			PriceDelta:      opt.PriceDelta,
		})
	}

	for _, group := range item.Customizations {
		picks := chosen[group.ID]
		need := group.MinSelect
		if group.IsRequired && need == 0 {
			need = 1
		}
		if picks < need {
			return nil, errors.New("missing required selection: " + group.Name)
		}
		if group.MaxSelect > 0 && picks > group.MaxSelect {
			return nil, errors.New("too many selections: " + group.Name)
		}
	}
	return out, nil
}

// ----- Remote mirror adapter -----

// cartRemote adapts the mirror repository to cart.Remote for one user.
type cartRemote struct {
	userID uint
	repo   *repository.CartRepository
}

func (r cartRemote) Pull(context.Context) ([]cart.LineItem, error) {
	return r.repo.PullLines(r.userID)
}

func (r cartRemote) Push(_ context.Context, items []cart.LineItem) error {
	return r.repo.PushLines(r.userID, items)
}

// NewCartRemoteFunc wires the mirror repository into the cart manager.
func NewCartRemoteFunc(repo *repository.CartRepository) cart.RemoteFunc {
	return func(userID uint) cart.Remote {
		return cartRemote{userID: userID, repo: repo}
	}
}
