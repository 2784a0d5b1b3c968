package controllers

import (
	"pos-backend/pkg/resp"
	"pos-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{ Dashboard *services.DashboardService }

func NewDashboardController(d *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: d}
}

// GET /dashboard/stats
func (dc *DashboardController) Stats(c *gin.Context) {
	stats, err := dc.Dashboard.Stats()
	if err != nil { respondError(c, err); return }
	resp.OK(c, stats)
}
