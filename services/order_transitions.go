package services

import (
	"errors"
	"fmt"
	"strings"

	"pos-backend/entity"

	"gorm.io/gorm"
)

// UpdateStatus applies one administrative status change.
// Cancelling returns the items to stock in the same transaction.
func (s *OrderService) UpdateStatus(actor Identity, orderID uint, next entity.OrderStatus) (*entity.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	next = entity.OrderStatus(strings.ToUpper(strings.TrimSpace(string(next))))
	if !next.Valid() {
		return nil, fmt.Errorf("%w: status must be PENDING, COMPLETED or CANCELLED", ErrValidation)
	}

	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID, 0)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move order from %s to %s", ErrConflict, o.Status, next)
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: order %d changed concurrently", ErrConflict, o.ID)
		}

		if next == entity.OrderCancelled {
			for _, it := range o.Items {
				if err := s.ProductRepo.IncrementStock(tx, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}
		}

		o.Status = next
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Events.Publish(OrderEvent{Type: EventOrderStatusChanged, Order: out})
	return out, nil
}
