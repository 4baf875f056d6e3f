// Package order holds the order HTTP controllers.
//
// Responsibilities:
//  1. Receive HTTP requests, bind parameters.
//  2. Call the application service.
//  3. Use the response package for responses and error mapping.
//
// Error handling rules:
//  1. Binding errors: response.HandleError, straight 400.
//  2. Business errors: response.HandleAppError, automatic status mapping.
package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"takeout/api/response"
	orderapp "takeout/application/order"
	"takeout/pkg/errors"
)

// UserController is the customer-facing order controller. The acting
// user is taken from the X-User-ID header; handlers never fall back to
// an ambient identity.
type UserController struct {
	orderService *orderapp.Service
}

// NewUserController creates the customer-facing order controller.
func NewUserController(orderService *orderapp.Service) *UserController {
	return &UserController{orderService: orderService}
}

// RegisterRoutes registers the customer order routes.
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/user/orders")
	{
		group.POST("/submit", c.Submit)
		group.PUT("/payment", c.InitiatePayment)
		group.POST("/notify/paid", c.ConfirmPayment)
		group.GET("", c.PageQuery)
		group.GET("/:id", c.Details)
		group.PUT("/:id/cancel", c.Cancel)
		group.POST("/:id/repeat", c.Repeat)
		group.POST("/:id/reminder", c.Remind)
	}
}

func currentUserID(ctx *gin.Context) string {
	return ctx.GetHeader("X-User-ID")
}

// Submit creates an order from the user's cart.
// POST /api/v1/user/orders/submit
func (c *UserController) Submit(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	var req orderapp.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	receipt, err := c.orderService.Submit(ctx.Request.Context(), userID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, receipt, "order submitted successfully")
}

// PaymentRequest identifies the order to pay by its public number.
type PaymentRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
}

// InitiatePayment starts a payment transaction.
// PUT /api/v1/user/orders/payment
func (c *UserController) InitiatePayment(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	var req PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	handle, err := c.orderService.InitiatePayment(ctx.Request.Context(), userID, req.OrderNumber)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, handle, "payment initiated")
}

// ConfirmPayment is the settlement callback of the payment gateway.
// POST /api/v1/user/orders/notify/paid
func (c *UserController) ConfirmPayment(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	var req PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.ConfirmPayment(ctx.Request.Context(), userID, req.OrderNumber); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "payment confirmed")
}

// PageQuery lists the user's order history.
// GET /api/v1/user/orders?page=1&pageSize=10&status=2
func (c *UserController) PageQuery(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))

	var status *int
	if raw := ctx.Query("status"); raw != "" {
		s, err := strconv.Atoi(raw)
		if err != nil {
			response.HandleError(ctx, err, "invalid status", http.StatusBadRequest)
			return
		}
		status = &s
	}

	result, err := c.orderService.PageQuery(ctx.Request.Context(), userID, page, pageSize, status)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "orders retrieved successfully")
}

// Details returns one order with its line items.
// GET /api/v1/user/orders/:id
func (c *UserController) Details(ctx *gin.Context) {
	orderID := ctx.Param("id")
	view, err := c.orderService.Details(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, view, "order retrieved successfully")
}

// Cancel cancels the user's own order.
// PUT /api/v1/user/orders/:id/cancel
func (c *UserController) Cancel(ctx *gin.Context) {
	if err := c.orderService.UserCancel(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order cancelled successfully")
}

// Repeat copies a past order back into the cart.
// POST /api/v1/user/orders/:id/repeat
func (c *UserController) Repeat(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	if err := c.orderService.Repeat(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order repeated successfully")
}

// Remind broadcasts a progress reminder.
// POST /api/v1/user/orders/:id/reminder
func (c *UserController) Remind(ctx *gin.Context) {
	if err := c.orderService.Remind(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "reminder sent")
}
