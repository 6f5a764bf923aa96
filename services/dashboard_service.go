package services

import (
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

// DashboardService assembles the numbers on the back-office landing page.
type DashboardService struct {
	Repo *repository.DashboardRepository
}

func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{Repo: repo}
}

type DashboardOut struct {
	OrdersToday     int64                          `json:"ordersToday"`
	RevenueToday    int64                          `json:"revenueToday"`
	PendingOrders   int64                          `json:"pendingOrders"`
	Customers       int64                          `json:"customers"`
	MenuItems       int64                          `json:"menuItems"`
	StatusBreakdown map[entity.OrderStatus]int64   `json:"statusBreakdown"`
	TopItems        []repository.TopItem           `json:"topItems"`
	RecentOrders    []repository.AdminOrderSummary `json:"recentOrders"`
}

func (s *DashboardService) Overview() (*DashboardOut, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	out := &DashboardOut{}
	var err error

	if out.OrdersToday, err = s.Repo.CountOrdersSince(startOfDay); err != nil {
		return nil, err
	}
	if out.RevenueToday, err = s.Repo.RevenueSince(startOfDay); err != nil {
		return nil, err
	}
	if out.PendingOrders, err = s.Repo.CountOrdersByStatus(entity.StatusPending); err != nil {
		return nil, err
	}
	if out.Customers, err = s.Repo.CountCustomers(); err != nil {
		return nil, err
	}
	if out.MenuItems, err = s.Repo.CountMenuItems(); err != nil {
		return nil, err
	}
	if out.StatusBreakdown, err = s.Repo.StatusBreakdown(); err != nil {
		return nil, err
	}
	if out.TopItems, err = s.Repo.TopItems(weekAgo, 5); err != nil {
		return nil, err
	}
	if out.RecentOrders, err = s.Repo.RecentOrders(10); err != nil {
		return nil, err
	}
	return out, nil
}
