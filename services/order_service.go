package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"pos-backend/entity"
	"pos-backend/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	Pricing     Pricing
	Events      OrderPublisher
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	pricing Pricing,
	events OrderPublisher,
) *OrderService {
	if events == nil {
		events = nopPublisher{}
	}
	return &OrderService{DB: db, Repo: repo, ProductRepo: productRepo, Pricing: pricing, Events: events}
}

// ----- DTOs from Controller -----

// OrderItemIn.Price is what the client displayed; the stored price always comes from the catalog.
type OrderItemIn struct {
	ProductID uint  `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
	Price     int64 `json:"price"`
}

type CreateOrderReq struct {
	Items         []OrderItemIn        `json:"items" binding:"dive"`
	DiningMode    entity.DiningMode    `json:"diningMode" binding:"required"`
	CustomerName  string               `json:"customerName"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	OrderNotes    string               `json:"orderNotes"`
	TableNo       string               `json:"tableNo"`
}

func (req *CreateOrderReq) normalize() {
	req.DiningMode = entity.DiningMode(strings.ToUpper(strings.TrimSpace(string(req.DiningMode))))
	req.PaymentMethod = entity.PaymentMethod(strings.ToUpper(strings.TrimSpace(string(req.PaymentMethod))))
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.OrderNotes = strings.TrimSpace(req.OrderNotes)
	req.TableNo = strings.TrimSpace(req.TableNo)
}

// Validate runs every check that does not need the database.
func (req *CreateOrderReq) Validate() error {
	req.normalize()
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items are required", ErrValidation)
	}
	for i, it := range req.Items {
		if it.ProductID == 0 {
			return fmt.Errorf("%w: items[%d].productId is required", ErrValidation, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity must be a positive integer", ErrValidation, i)
		}
	}
	if !req.DiningMode.Valid() {
		return fmt.Errorf("%w: diningMode must be DINE_IN or TAKE_AWAY", ErrValidation)
	}
	if req.DiningMode == entity.DineIn && req.TableNo == "" {
		return fmt.Errorf("%w: tableNo is required for DINE_IN", ErrValidation)
	}
	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		return fmt.Errorf("%w: paymentMethod must be CASH, QRIS or CARD", ErrValidation)
	}
	return nil
}

// ----- Create -----

// Create prices the request from catalog prices and stores the order, its items and
// the stock decrement in one transaction.
func (s *OrderService) Create(actor Identity, req *CreateOrderReq) (*entity.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(req.Items))
		for _, it := range req.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := s.ProductRepo.FindByIDs(tx, ids)
		if err != nil {
			return err
		}

		cart := NewCart()
		for _, it := range req.Items {
			p, ok := products[it.ProductID]
			if !ok {
				return fmt.Errorf("%w: invalid productId: %d", ErrValidation, it.ProductID)
			}
			if !p.IsActive {
				return fmt.Errorf("%w: product %q is not available", ErrValidation, p.Name)
			}
			if it.Price != 0 && it.Price != p.Price {
				log.Printf("order by user %d: client price %d for product %d differs from catalog %d",
					actor.UserID, it.Price, p.ID, p.Price)
			}
			if err := cart.Add(p, it.Quantity); err != nil {
				return err
			}
		}

		quote := s.Pricing.Quote(cart.PricedLines(), req.DiningMode)
		order := entity.Order{
			Status:        entity.OrderCompleted,
			Subtotal:      quote.Subtotal,
			Tax:           quote.Tax,
			Packaging:     quote.Packaging,
			Total:         quote.Total,
			DiningMode:    req.DiningMode,
			TableNo:       req.TableNo,
			CustomerName:  req.CustomerName,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.OrderNotes,
			UserID:        actor.UserID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, l := range cart.Lines() {
			oi := entity.OrderItem{
				OrderID:     order.ID,
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				Price:       l.UnitPrice,
				LineTotal:   l.UnitPrice * int64(l.Quantity),
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			ok, err := s.ProductRepo.DecrementStock(tx, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: insufficient stock for %q", ErrConflict, l.ProductName)
			}
			order.Items = append(order.Items, oi)
		}

		out = &order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("order %d created by user %d: total %d", out.ID, actor.UserID, out.Total)
	s.Events.Publish(OrderEvent{Type: EventOrderCreated, Order: out})
	return out, nil
}

// ----- List & Detail -----

type OrderListOut struct {
	Items []repository.OrderSummary `json:"items"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

// List shows cashiers their own orders and administrators everyone's.
func (s *OrderService) List(actor Identity, status entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	f := repository.OrderFilter{Status: status, Page: page, Limit: limit}
	if !actor.IsAdmin() {
		f.UserID = actor.UserID
	}
	items, total, err := s.Repo.ListOrders(f)
	if err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Detail hides other cashiers' orders behind a not-found.
func (s *OrderService) Detail(actor Identity, orderID uint) (*entity.Order, error) {
	owner := actor.UserID
	if actor.IsAdmin() {
		owner = 0
	}
	o, err := s.Repo.GetOrder(s.DB, orderID, owner)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return o, err
}
