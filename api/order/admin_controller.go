package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"takeout/api/response"
	orderapp "takeout/application/order"
)

// AdminController is the back-office order controller.
type AdminController struct {
	orderService *orderapp.Service
}

// NewAdminController creates the back-office order controller.
func NewAdminController(orderService *orderapp.Service) *AdminController {
	return &AdminController{orderService: orderService}
}

// RegisterRoutes registers the back-office order routes.
func (c *AdminController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/admin/orders")
	{
		group.GET("/conditionSearch", c.ConditionSearch)
		group.GET("/statistics", c.Statistics)
		group.GET("/:id", c.Details)
		group.PUT("/confirm", c.Confirm)
		group.PUT("/rejection", c.Reject)
		group.PUT("/cancel", c.Cancel)
		group.PUT("/delivery/:id", c.Dispatch)
		group.PUT("/complete/:id", c.Complete)
	}
}

// ConditionSearch searches orders across all users.
// GET /api/v1/admin/orders/conditionSearch
func (c *AdminController) ConditionSearch(ctx *gin.Context) {
	var q orderapp.AdminQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.orderService.ConditionSearch(ctx.Request.Context(), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "orders retrieved successfully")
}

// Statistics counts orders per active status.
// GET /api/v1/admin/orders/statistics
func (c *AdminController) Statistics(ctx *gin.Context) {
	stats, err := c.orderService.StatusStatistics(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, stats, "statistics retrieved successfully")
}

// Details returns one order with its line items.
// GET /api/v1/admin/orders/:id
func (c *AdminController) Details(ctx *gin.Context) {
	view, err := c.orderService.Details(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, view, "order retrieved successfully")
}

// ConfirmRequest identifies the order to confirm.
type ConfirmRequest struct {
	OrderID string `json:"id" binding:"required"`
}

// Confirm accepts a paid order.
// PUT /api/v1/admin/orders/confirm
func (c *AdminController) Confirm(ctx *gin.Context) {
	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.Confirm(ctx.Request.Context(), req.OrderID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order confirmed")
}

// RejectRequest identifies the order to reject and carries the reason.
type RejectRequest struct {
	OrderID string `json:"id" binding:"required"`
	Reason  string `json:"rejection_reason" binding:"required"`
}

// Reject refuses a to-be-confirmed order.
// PUT /api/v1/admin/orders/rejection
func (c *AdminController) Reject(ctx *gin.Context) {
	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.Reject(ctx.Request.Context(), req.OrderID, req.Reason); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order rejected")
}

// CancelRequest identifies the order to cancel and carries the reason.
type CancelRequest struct {
	OrderID string `json:"id" binding:"required"`
	Reason  string `json:"cancel_reason" binding:"required"`
}

// Cancel cancels an order from the back office.
// PUT /api/v1/admin/orders/cancel
func (c *AdminController) Cancel(ctx *gin.Context) {
	var req CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.MerchantCancel(ctx.Request.Context(), req.OrderID, req.Reason); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order cancelled")
}

// Dispatch sends a confirmed order out for delivery.
// PUT /api/v1/admin/orders/delivery/:id
func (c *AdminController) Dispatch(ctx *gin.Context) {
	if err := c.orderService.Dispatch(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order dispatched")
}

// Complete marks a dispatched order as delivered.
// PUT /api/v1/admin/orders/complete/:id
func (c *AdminController) Complete(ctx *gin.Context) {
	if err := c.orderService.Complete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order completed")
}
