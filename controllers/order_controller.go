package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pos-backend/entity"
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders   *services.OrderService
	Receipts *services.ReceiptService
}

func NewOrderController(orders *services.OrderService, receipts *services.ReceiptService) *OrderController {
	return &OrderController{Orders: orders, Receipts: receipts}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	order, err := oc.Orders.Create(actor, &req)
	if err != nil { respondError(c, err); return }
	resp.Created(c, order)
}

// GET /orders?status=&page=&limit=
func (oc *OrderController) List(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := entity.OrderStatus(strings.ToUpper(c.Query("status")))

	out, err := oc.Orders.List(actor, status, page, limit)
	if err != nil { respondError(c, err); return }
	resp.OK(c, out)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }
	id, ok := paramID(c, "id")
	if !ok { return }

	order, err := oc.Orders.Detail(actor, id)
	if err != nil { respondError(c, err); return }
	resp.OK(c, order)
}

type updateStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }
	id, ok := paramID(c, "id")
	if !ok { return }

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil { resp.BadRequest(c, err.Error()); return }

	order, err := oc.Orders.UpdateStatus(actor, id, req.Status)
	if err != nil { respondError(c, err); return }
	resp.OK(c, order)
}

// GET /orders/:id/receipt
func (oc *OrderController) Receipt(c *gin.Context) {
	actor, ok := identity(c)
	if !ok { return }
	id, ok := paramID(c, "id")
	if !ok { return }

	pdf, order, err := oc.Receipts.Render(actor, id)
	if err != nil { respondError(c, err); return }

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%d.pdf"`, order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
