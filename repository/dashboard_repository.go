package repository

import (
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) CountOrdersSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// RevenueSince sums order totals, cancellations excluded.
func (r *DashboardRepository) RevenueSince(since time.Time) (int64, error) {
	var row struct{ Revenue int64 }
	err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ? AND status <> ?", since, entity.StatusCancelled).
		Scan(&row).Error
	return row.Revenue, err
}

func (r *DashboardRepository) CountOrdersByStatus(status entity.OrderStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// StatusBreakdown counts live orders per status.
func (r *DashboardRepository) StatusBreakdown() (map[entity.OrderStatus]int64, error) {
	var rows []struct {
		Status entity.OrderStatus
		Count  int64
	}
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *DashboardRepository) CountCustomers() (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).
		Where("role = ?", "customer").
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountMenuItems() (int64, error) {
	var count int64
	err := r.DB.Model(&entity.MenuItem{}).Count(&count).Error
	return count, err
}

// TopItem is one row of the best-sellers board.
type TopItem struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	Revenue    int64  `json:"revenue"`
}

// TopItems ranks dishes by quantity sold since the given time.
func (r *DashboardRepository) TopItems(since time.Time, limit int) ([]TopItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	var out []TopItem
	err := r.DB.Table("order_items AS oi").
		Select("oi.menu_item_id, oi.name, SUM(oi.qty) AS quantity, SUM(oi.total) AS revenue").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.created_at >= ? AND o.status <> ? AND o.deleted_at IS NULL", since, entity.StatusCancelled).
		Group("oi.menu_item_id, oi.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// RecentOrders feeds the dashboard's latest-orders panel.
func (r *DashboardRepository) RecentOrders(limit int) ([]AdminOrderSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
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
	err := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.user_id, o.status, o.total, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.deleted_at IS NULL").
		Order("o.id DESC").Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
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
	return out, nil
}
