package repository

import (
	"time"

	"pos-backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order; items are created separately with CreateOrderItem.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit("Items").Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// GetOrder loads an order with its items; userID 0 means any owner.
func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID, userID uint) (*entity.Order, error) {
	q := tx.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var o entity.Order
	if err := q.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderFilter struct {
	UserID uint // 0 = all users
	Status entity.OrderStatus
	Page   int
	Limit  int
}

type OrderSummary struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"userId"`
	Cashier    string             `json:"cashier"`
	Status     entity.OrderStatus `json:"status"`
	DiningMode entity.DiningMode  `json:"diningMode"`
	Total      int64              `json:"total"`
	CreatedAt  time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(f OrderFilter) ([]OrderSummary, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 20
	}
	offset := (f.Page - 1) * f.Limit

	base := func() *gorm.DB {
		q := r.DB.Table("orders AS o").Where("o.deleted_at IS NULL")
		if f.UserID != 0 {
			q = q.Where("o.user_id = ?", f.UserID)
		}
		if f.Status != "" {
			q = q.Where("o.status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := make([]OrderSummary, 0, f.Limit)
	err := base().
		Select("o.id, o.user_id, u.username AS cashier, o.status, o.dining_mode, o.total, o.created_at").
		Joins("LEFT JOIN users u ON u.id = o.user_id").
		Order("o.id DESC").Limit(f.Limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

// UpdateStatusGuard moves an order from one status to another; 0 rows means the order was not in `from`.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Dashboard ----------------

func (r *OrderRepository) CountOrders() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepository) SumTotal(status entity.OrderStatus, since *time.Time) (int64, error) {
	var row struct{ Sum int64 }
	q := r.DB.Model(&entity.Order{}).Select("COALESCE(SUM(total), 0) AS sum").Where("status = ?", status)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	err := q.Scan(&row).Error
	return row.Sum, err
}

type OrderTotalRow struct {
	Total     int64
	CreatedAt time.Time
}

// TotalsSince is bucketed per day by the caller, sqlite date functions vary by driver.
func (r *OrderRepository) TotalsSince(status entity.OrderStatus, since time.Time) ([]OrderTotalRow, error) {
	var rows []OrderTotalRow
	err := r.DB.Model(&entity.Order{}).
		Select("total, created_at").
		Where("status = ? AND created_at >= ?", status, since).
		Scan(&rows).Error
	return rows, err
}
