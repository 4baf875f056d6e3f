// Package report holds the statistics HTTP controller.
package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"takeout/api/response"
	reportapp "takeout/application/report"
	"takeout/pkg/errors"
)

// Controller is the back-office statistics controller.
type Controller struct {
	reportService *reportapp.Service
}

// NewController creates the statistics controller.
func NewController(reportService *reportapp.Service) *Controller {
	return &Controller{reportService: reportService}
}

// RegisterRoutes registers the statistics routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/admin/report")
	{
		group.GET("/turnoverStatistics", c.Turnover)
		group.GET("/userStatistics", c.Users)
	}
}

func bindDateRange(ctx *gin.Context) (begin, end time.Time, ok bool) {
	var err error
	begin, err = time.ParseInLocation(reportapp.DateLayout, ctx.Query("begin"), time.Local)
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("invalid begin date"), "invalid begin date, expected YYYY-MM-DD", http.StatusBadRequest)
		return begin, end, false
	}
	end, err = time.ParseInLocation(reportapp.DateLayout, ctx.Query("end"), time.Local)
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("invalid end date"), "invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
		return begin, end, false
	}
	return begin, end, true
}

// Turnover reports the daily turnover series.
// GET /api/v1/admin/report/turnoverStatistics?begin=2026-08-01&end=2026-08-30
func (c *Controller) Turnover(ctx *gin.Context) {
	begin, end, ok := bindDateRange(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.Turnover(ctx.Request.Context(), begin, end)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, report, "turnover statistics retrieved")
}

// Users reports the daily user-growth series.
// GET /api/v1/admin/report/userStatistics?begin=2026-08-01&end=2026-08-30
func (c *Controller) Users(ctx *gin.Context) {
	begin, end, ok := bindDateRange(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.Users(ctx.Request.Context(), begin, end)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, report, "user statistics retrieved")
}
