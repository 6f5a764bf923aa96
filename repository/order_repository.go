package repository

import (
	"strings"
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order with its items and selections in one shot.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("User").
		Preload("Items.Selections").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /profile/orders, the customer order history.
type OrderSummary struct {
	ID          uint               `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	Status      entity.OrderStatus `json:"status"`
	Total       int64              `json:"total"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, order_number, status, total, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items.Selections").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /admin/orders, paged with the back-office filters.
type AdminOrderSummary struct {
	ID           uint               `json:"id"`
	OrderNumber  string             `json:"orderNumber"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	Status       entity.OrderStatus `json:"status"`
	Total        int64              `json:"total"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(status entity.OrderStatus, search string, page, limit int) ([]AdminOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Table("orders AS o").Where("o.deleted_at IS NULL")
	if status != "" {
		dbCount = dbCount.Where("o.status = ?", status)
	}
	if search != "" {
		dbCount = dbCount.Where("o.order_number LIKE ?", "%"+search+"%")
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID          uint
		OrderNumber string
		UserID      uint
		Status      entity.OrderStatus
		Total       int64
		CreatedAt   time.Time
		FirstName   string
		LastName    string
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.user_id, o.status, o.total, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.deleted_at IS NULL")
	if status != "" {
		db = db.Where("o.status = ?", status)
	}
	if search != "" {
		db = db.Where("o.order_number LIKE ?", "%"+search+"%")
	}
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]AdminOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, AdminOrderSummary{
			ID:           row.ID,
			OrderNumber:  row.OrderNumber,
			UserID:       row.UserID,
			CustomerName: trimName(row.FirstName, row.LastName),
			Status:       row.Status,
			Total:        row.Total,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, total, nil
}

func trimName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// ---------------- Status updates ----------------

// SetStatus writes the status unconditionally and reports whether the
// order existed.
func (r *OrderRepository) SetStatus(orderID uint, to entity.OrderStatus) (bool, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetStatusFromTo flips the status only when it still holds the expected
// value, so two racing writers cannot both win.
func (r *OrderRepository) SetStatusFromTo(orderID uint, from, to entity.OrderStatus) (bool, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
