package services

import (
	"time"

	"pos-backend/entity"
	"pos-backend/repository"
)

const dashboardDays = 7

type DashboardService struct {
	Orders   *repository.OrderRepository
	Products *repository.ProductRepository
	now      func() time.Time
}

func NewDashboardService(orders *repository.OrderRepository, products *repository.ProductRepository) *DashboardService {
	return &DashboardService{Orders: orders, Products: products, now: time.Now}
}

type DailyRevenue struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

type DashboardStats struct {
	TotalOrders   int64                     `json:"totalOrders"`
	TotalRevenue  int64                     `json:"totalRevenue"`
	TotalProducts int64                     `json:"totalProducts"`
	Last7Days     []DailyRevenue            `json:"last7Days"`
	RecentOrders  []repository.OrderSummary `json:"recentOrders"`
}

// Stats only counts revenue of COMPLETED orders.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	var out DashboardStats
	var err error

	if out.TotalOrders, err = s.Orders.CountOrders(); err != nil {
		return nil, err
	}
	if out.TotalRevenue, err = s.Orders.SumTotal(entity.OrderCompleted, nil); err != nil {
		return nil, err
	}
	if out.TotalProducts, err = s.Products.CountActive(); err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(dashboardDays - 1))

	rows, err := s.Orders.TotalsSince(entity.OrderCompleted, start)
	if err != nil {
		return nil, err
	}
	buckets := make(map[string]int64, dashboardDays)
	for _, r := range rows {
		buckets[r.CreatedAt.In(now.Location()).Format("2006-01-02")] += r.Total
	}
	out.Last7Days = make([]DailyRevenue, 0, dashboardDays)
	for i := 0; i < dashboardDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		out.Last7Days = append(out.Last7Days, DailyRevenue{Date: day, Total: buckets[day]})
	}

	recent, _, err := s.Orders.ListOrders(repository.OrderFilter{Page: 1, Limit: 5})
	if err != nil {
		return nil, err
	}
	out.RecentOrders = recent
	return &out, nil
}
