package services

import "pos-backend/entity"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type  string        `json:"type"`
	Order *entity.Order `json:"order"`
}

// OrderPublisher receives events after the transaction has committed.
type OrderPublisher interface {
	Publish(ev OrderEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(OrderEvent) {}
