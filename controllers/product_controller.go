package controllers

import (
	"pos-backend/middlewares"
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct{ Products *services.ProductService }

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

// GET /products?all=true&category=FOOD
// Inactive products are only listed for admins.
func (pc *ProductController) List(c *gin.Context) {
	includeInactive := false
	if c.Query("all") == "true" {
		if actor, ok := middlewares.CurrentIdentity(c); ok && actor.IsAdmin() {
			includeInactive = true
		}
	}

	items, err := pc.Products.List(includeInactive, c.Query("category"))
	if err != nil { respondError(c, err); return }
	resp.OK(c, items)
}

// GET /products/:id
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok { return }

	p, err := pc.Products.Get(id)
	if err != nil { respondError(c, err); return }
	resp.OK(c, p)
}

// POST /products
func (pc *ProductController) Create(c *gin.Context) {
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil { resp.BadRequest(c, err.Error()); return }

	p, err := pc.Products.Create(&in)
	if err != nil { respondError(c, err); return }
	resp.Created(c, p)
}

// PUT /products/:id
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok { return }

	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil { resp.BadRequest(c, err.Error()); return }

	p, err := pc.Products.Update(id, &in)
	if err != nil { respondError(c, err); return }
	resp.OK(c, p)
}

// DELETE /products/:id
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok { return }

	if err := pc.Products.Delete(id); err != nil { respondError(c, err); return }
	resp.OK(c, gin.H{"message": "deleted"})
}
