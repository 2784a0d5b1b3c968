package services

import (
	"fmt"

	"pos-backend/entity"
)

// CartLine is a product with the unit price captured when it was added.
type CartLine struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// Cart keeps lines in insertion order. A line never has quantity below 1.
type Cart struct {
	lines []CartLine
	index map[uint]int
}

func NewCart() *Cart {
	return &Cart{index: make(map[uint]int)}
}

// Add appends the product or increases the quantity of its existing line.
func (c *Cart) Add(p entity.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}
	if i, ok := c.index[p.ID]; ok {
		c.lines[i].Quantity += qty
		return nil
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, CartLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    qty,
	})
	return nil
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(productID uint, qty int) bool {
	i, ok := c.index[productID]
	if !ok {
		return false
	}
	if qty <= 0 {
		c.Remove(productID)
		return true
	}
	c.lines[i].Quantity = qty
	return true
}

func (c *Cart) Remove(productID uint) bool {
	i, ok := c.index[productID]
	if !ok {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
	return true
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[uint]int)
}

func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.UnitPrice * int64(l.Quantity)
	}
	return sum
}

func (c *Cart) PricedLines() []PricedLine {
	out := make([]PricedLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, PricedLine{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return out
}

// CheckoutRequest turns the cart into the body accepted by POST /orders.
func (c *Cart) CheckoutRequest(mode entity.DiningMode, tableNo string) *CreateOrderReq {
	items := make([]OrderItemIn, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, OrderItemIn{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.UnitPrice})
	}
	return &CreateOrderReq{Items: items, DiningMode: mode, TableNo: tableNo}
}
