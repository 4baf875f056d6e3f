package order

import (
	"time"

	"takeout/domain/order"
)

// SubmitRequest is the input of order submission. The current user is
// passed separately; handlers must never rely on ambient identity.
type SubmitRequest struct {
	AddressID string `json:"address_id" binding:"required"`
	Remark    string `json:"remark"`
}

// SubmitReceipt is returned to the customer after a successful submission.
type SubmitReceipt struct {
	OrderID   string    `json:"id"`
	Number    string    `json:"order_number"`
	OrderedAt time.Time `json:"order_time"`
	Amount    int64     `json:"order_amount"`
}

// LineItemView is the read model of one line item.
type LineItemView struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	DishID    string `json:"dish_id"`
	Name      string `json:"name"`
	Flavor    string `json:"flavor,omitempty"`
	Quantity  int    `json:"number"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
}

// OrderView is the read model of an order. One projection function builds
// it field by field; there is no reflective copying anywhere.
type OrderView struct {
	ID           string         `json:"id"`
	Number       string         `json:"number"`
	UserID       string         `json:"user_id"`
	Status       int            `json:"status"`
	PayStatus    int            `json:"pay_status"`
	Amount       int64          `json:"amount"`
	Consignee    string         `json:"consignee"`
	Phone        string         `json:"phone"`
	Remark       string         `json:"remark,omitempty"`
	OrderedAt    time.Time      `json:"order_time"`
	CheckoutAt   *time.Time     `json:"checkout_time,omitempty"`
	DeliveredAt  *time.Time     `json:"delivery_time,omitempty"`
	CancelledAt  *time.Time     `json:"cancel_time,omitempty"`
	CancelReason string         `json:"cancel_reason,omitempty"`
	Dishes       string         `json:"order_dishes,omitempty"`
	Items        []LineItemView `json:"order_detail_list,omitempty"`
}

// PageResult is one page of order views with the total match count.
type PageResult struct {
	Total   int64        `json:"total"`
	Records []*OrderView `json:"records"`
}

// AdminQuery is the back-office search predicate.
type AdminQuery struct {
	Number    string     `form:"number"`
	Phone     string     `form:"phone"`
	Status    *int       `form:"status"`
	BeginTime *time.Time `form:"beginTime" time_format:"2006-01-02 15:04:05"`
	EndTime   *time.Time `form:"endTime" time_format:"2006-01-02 15:04:05"`
	Page      int        `form:"page"`
	PageSize  int        `form:"pageSize"`
}

// StatusStatistics is the back-office per-status count view.
type StatusStatistics struct {
	ToBeConfirmed      int64 `json:"toBeConfirmed"`
	Confirmed          int64 `json:"confirmed"`
	DeliveryInProgress int64 `json:"deliveryInProgress"`
	Completed          int64 `json:"completed"`
	Cancelled          int64 `json:"cancelled"`
}

// newOrderView is the single reusable projection from aggregate to view.
func newOrderView(o *order.Order, items []order.LineItem) *OrderView {
	views := make([]LineItemView, len(items))
	for i, it := range items {
		views[i] = LineItemView{
			ID:        it.ID(),
			OrderID:   it.OrderID(),
			DishID:    it.DishID(),
			Name:      it.Name(),
			Flavor:    it.Flavor(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice().Amount(),
			Amount:    it.Amount().Amount(),
		}
	}

	return &OrderView{
		ID:           o.ID(),
		Number:       o.Number(),
		UserID:       o.UserID(),
		Status:       int(o.Status()),
		PayStatus:    int(o.PayStatus()),
		Amount:       o.Amount().Amount(),
		Consignee:    o.Consignee(),
		Phone:        o.Phone(),
		Remark:       o.Remark(),
		OrderedAt:    o.OrderedAt(),
		CheckoutAt:   o.CheckoutAt(),
		DeliveredAt:  o.DeliveredAt(),
		CancelledAt:  o.CancelledAt(),
		CancelReason: o.CancelReason(),
		Items:        views,
	}
}
