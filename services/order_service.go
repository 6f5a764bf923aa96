package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/notify"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/pricing"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
	Carts    *cart.Manager
	Notifier notify.Notifier
	Log      *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	menuRepo *repository.MenuRepository,
	carts *cart.Manager,
	notifier notify.Notifier,
	log *zap.Logger,
) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		DB:       db,
		Repo:     repo,
		CartRepo: cartRepo,
		MenuRepo: menuRepo,
		Carts:    carts,
		Notifier: notifier,
		Log:      log,
	}
}

// ----- DTOs from Controller -----

type CheckoutIn struct {
	Address string `json:"address" binding:"required,min=5,max=300"`
	Phone   string `json:"phone" binding:"required,min=7,max=30"`
	Note    string `json:"note" binding:"max=500"`
}

type CheckoutOut struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Total       int64  `json:"total"`
}

// ----- Checkout -----

// Checkout turns the live cart into an order. Prices were frozen when the
// lines were added; totals are recomputed server-side from those lines.
// Availability is re-verified so a dish pulled from the menu after it was
// carted cannot be ordered.
func (s *OrderService) Checkout(ctx context.Context, userID uint, in *CheckoutIn) (*CheckoutOut, error) {
	sess := s.Carts.Session(ctx, userID)
	items := sess.Store.Items()
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	for _, line := range items {
		m, err := s.MenuRepo.GetItemBasics(line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("%s is no longer on the menu", line.Name)
		}
		if !m.IsAvailable {
			return nil, fmt.Errorf("%s is not available right now", line.Name)
		}
	}

	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		lines[i] = pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
	}
	totals := pricing.Calculate(lines)

	order := entity.Order{
		OrderNumber: generateOrderNumber(time.Now()),
		UserID:      userID,
		Status:      entity.StatusPending,
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
		Note:        strings.TrimSpace(in.Note),
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		DeliveryFee: totals.DeliveryFee,
		Total:       totals.Total,
	}
	for _, it := range items {
		oi := entity.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Qty:        it.Quantity,
			UnitPrice:  it.UnitPrice,
			Total:      it.Total(),
			Note:       it.Note,
		}
		for _, sel := range it.Selections {
			oi.Selections = append(oi.Selections, entity.OrderItemSelection{
				CustomizationID:       sel.CustomizationID,
				CustomizationOptionID: sel.OptionID,
				Label:                 sel.Label,
				FreeText:              sel.FreeText,
				PriceDelta:            sel.PriceDelta,
			})
		}
		order.Items = append(order.Items, oi)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		return s.CartRepo.ClearByUser(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	// The order exists; an unpersisted cart clear only means the cart may
	// reappear until the next write goes through.
	if err := sess.Store.Clear(ctx); err != nil {
		s.Log.Warn("cart not cleared after checkout",
			zap.Uint("userId", userID),
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
	}

	return &CheckoutOut{ID: order.ID, OrderNumber: order.OrderNumber, Total: order.Total}, nil
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	ID          uint               `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	Status      entity.OrderStatus `json:"status"`
	StatusLabel string             `json:"statusLabel"`
	Address     string             `json:"address"`
	Phone       string             `json:"phone"`
	Note        string             `json:"note,omitempty"`
	Subtotal    int64              `json:"subtotal"`
	Tax         int64              `json:"tax"`
	DeliveryFee int64              `json:"deliveryFee"`
	Total       int64              `json:"total"`
	Items       []entity.OrderItem `json:"items"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	return orderDetail(o), nil
}

func (s *OrderService) Detail(orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	return orderDetail(o), nil
}

func orderDetail(o *entity.Order) *OrderDetail {
	return &OrderDetail{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		StatusLabel: entity.StatusLabel(o.Status),
		Address:     o.Address,
		Phone:       o.Phone,
		Note:        o.Note,
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		DeliveryFee: o.DeliveryFee,
		Total:       o.Total,
		Items:       o.Items,
		CreatedAt:   o.CreatedAt,
	}
}

// ----- Timeline -----

type TimelineStep struct {
	Status  entity.OrderStatus `json:"status"`
	Label   string             `json:"label"`
	Reached bool               `json:"reached"`
	Current bool               `json:"current"`
}

// Timeline renders the delivery progress bar for one order. A cancelled
// order shows just where it started and where it ended.
func (s *OrderService) Timeline(userID, orderID uint) ([]TimelineStep, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	return buildTimeline(o.Status), nil
}

func buildTimeline(current entity.OrderStatus) []TimelineStep {
	if current == entity.StatusCancelled {
		return []TimelineStep{
			{Status: entity.StatusPending, Label: entity.StatusLabel(entity.StatusPending), Reached: true},
			{Status: entity.StatusCancelled, Label: entity.StatusLabel(entity.StatusCancelled), Reached: true, Current: true},
		}
	}

	progression := entity.StatusProgression()
	position := -1
	for i, st := range progression {
		if st == current {
			position = i
			break
		}
	}

	steps := make([]TimelineStep, 0, len(progression))
	for i, st := range progression {
		steps = append(steps, TimelineStep{
			Status:  st,
			Label:   entity.StatusLabel(st),
			Reached: position >= 0 && i <= position,
			Current: i == position,
		})
	}
	return steps
}

// ----- Customer cancel -----

// CancelByCustomer lets the customer back out while the kitchen has not
// confirmed yet. The compare-and-swap loses against a concurrent admin
// update, in which case the order proceeds.
func (s *OrderService) CancelByCustomer(ctx context.Context, userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.StatusPending {
		return nil, errors.New("order can no longer be cancelled")
	}

	ok, err := s.Repo.SetStatusFromTo(orderID, entity.StatusPending, entity.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("order can no longer be cancelled")
	}

	if s.Notifier != nil {
		n := notify.StatusNotification{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			UserID:      o.UserID,
			OldStatus:   entity.StatusPending,
			NewStatus:   entity.StatusCancelled,
			ChangedAt:   time.Now(),
		}
		if err := s.Notifier.NotifyStatusChange(ctx, n); err != nil {
			s.Log.Warn("cancel notification failed",
				zap.String("orderNumber", o.OrderNumber),
				zap.Error(err))
		}
	}

	return s.DetailForUser(userID, orderID)
}

func generateOrderNumber(now time.Time) string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("MK-%s-%s", now.Format("20060102"), frag)
}
