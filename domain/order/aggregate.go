package order

import (
	"fmt"
	"time"

	"takeout/domain/shared"

	"github.com/google/uuid"
)

// CancelledByUser is the fixed reason recorded when the customer cancels.
const CancelledByUser = "cancelled by user"

// Order aggregate root. All fields are private; state changes go through
// behavior methods that enforce the status machine, and persistence goes
// through the Repository which uses the loaded status as a compare-and-set
// guard so two racing transitions on the same order cannot both win.
type Order struct {
	id           string
	number       string
	userID       string
	status       Status
	payStatus    PayStatus
	amount       shared.Money
	consignee    string
	phone        string
	remark       string
	orderedAt    time.Time
	checkoutAt   *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time
	cancelReason string
	items        []LineItem

	// loadedStatus is the status as read from the store; the repository
	// issues UPDATE ... WHERE status = loadedStatus on save.
	loadedStatus Status
	isNew        bool

	events []shared.DomainEvent
}

// LineItem is one priced dish or meal-combo entry of an order. It belongs
// to exactly one Order, is created in the same transaction as the order
// and is immutable once written.
type LineItem struct {
	id        string
	orderID   string
	dishID    string
	name      string
	flavor    string
	quantity  int
	unitPrice shared.Money
	amount    shared.Money
}

// ItemRequest carries one priced cart entry into order creation.
type ItemRequest struct {
	DishID    string
	Name      string
	Flavor    string
	Quantity  int
	UnitPrice shared.Money
}

// Delivery is the recipient snapshot copied from the address at submission.
// It is frozen on the order, never re-read live.
type Delivery struct {
	Consignee string
	Phone     string
}

// NewOrder creates an Order in PENDING_PAYMENT / UNPAID from the submitted
// cart entries. This is the only way to create an Order; it validates the
// entries and computes the total amount.
func NewOrder(userID, number string, delivery Delivery, remark string, requests []ItemRequest, now time.Time) (*Order, error) {
	if userID == "" {
		return nil, shared.NewValidationError("order", "user_id", "user id is required")
	}
	if len(requests) == 0 {
		return nil, ErrEmptyOrderItems
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	items := make([]LineItem, len(requests))
	total := shared.CNY(0)
	for i, req := range requests {
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		lineAmount, err := req.UnitPrice.Multiply(req.Quantity)
		if err != nil {
			return nil, err
		}

		itemID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate line item id: %w", err)
		}

		items[i] = LineItem{
			id:        itemID.String(),
			orderID:   orderID.String(),
			dishID:    req.DishID,
			name:      req.Name,
			flavor:    req.Flavor,
			quantity:  req.Quantity,
			unitPrice: req.UnitPrice,
			amount:    *lineAmount,
		}

		sum, err := total.Add(*lineAmount)
		if err != nil {
			return nil, err
		}
		total = *sum
	}

	return &Order{
		id:           orderID.String(),
		number:       number,
		userID:       userID,
		status:       StatusPendingPayment,
		payStatus:    PayStatusUnpaid,
		amount:       total,
		consignee:    delivery.Consignee,
		phone:        delivery.Phone,
		remark:       remark,
		orderedAt:    now,
		items:        items,
		loadedStatus: StatusPendingPayment,
		isNew:        true,
	}, nil
}

// ============================================================================
// Lifecycle behavior
// ============================================================================

// MarkPaid records a successful payment settlement:
// PENDING_PAYMENT -> TO_BE_CONFIRMED, pay status PAID, checkout time set.
// An OrderPaidEvent is recorded for broadcast after commit.
func (o *Order) MarkPaid(now time.Time) error {
	if !o.status.CanTransitionTo(StatusToBeConfirmed) {
		return NewStatusInvalidError(o.id, o.status, StatusToBeConfirmed)
	}
	if !o.payStatus.CanTransitionTo(PayStatusPaid) {
		return NewStatusInvalidError(o.id, o.status, StatusToBeConfirmed)
	}

	o.status = StatusToBeConfirmed
	o.payStatus = PayStatusPaid
	o.checkoutAt = &now
	o.events = append(o.events, NewOrderPaidEvent(o.id, o.number))
	return nil
}

// CancelByUser cancels the order on behalf of the customer. Only permitted
// while the order has not been accepted by the merchant (status <= 2).
// Cancelling a paid-but-unconfirmed order flags the funds for refund.
func (o *Order) CancelByUser(now time.Time) error {
	if o.status > StatusToBeConfirmed {
		return NewNotCancellableError(o.id, o.status)
	}
	if o.status == StatusToBeConfirmed {
		o.flagRefund()
	}

	o.status = StatusCancelled
	o.cancelReason = CancelledByUser
	o.cancelledAt = &now
	return nil
}

// Confirm is the merchant accepting the order: TO_BE_CONFIRMED -> CONFIRMED.
func (o *Order) Confirm() error {
	if o.status != StatusToBeConfirmed {
		return NewStatusInvalidError(o.id, o.status, StatusConfirmed)
	}

	o.status = StatusConfirmed
	return nil
}

// Reject is the merchant declining an order awaiting confirmation. If the
// customer already paid, a refund obligation is flagged in the same change.
func (o *Order) Reject(reason string, now time.Time) error {
	if o.status != StatusToBeConfirmed {
		return NewStatusInvalidError(o.id, o.status, StatusCancelled)
	}
	if o.payStatus == PayStatusPaid {
		o.flagRefund()
	}

	o.status = StatusCancelled
	o.cancelReason = reason
	o.cancelledAt = &now
	return nil
}

// CancelByMerchant is the management override: permitted independent of the
// current status. Same refund rule as Reject.
func (o *Order) CancelByMerchant(reason string, now time.Time) error {
	if o.payStatus == PayStatusPaid {
		o.flagRefund()
	}

	o.status = StatusCancelled
	o.cancelReason = reason
	o.cancelledAt = &now
	return nil
}

// Dispatch hands the order to delivery: CONFIRMED -> DELIVERY_IN_PROGRESS.
func (o *Order) Dispatch() error {
	if o.status != StatusConfirmed {
		return NewStatusInvalidError(o.id, o.status, StatusDeliveryInProgress)
	}

	o.status = StatusDeliveryInProgress
	return nil
}

// Complete closes a delivered order: DELIVERY_IN_PROGRESS -> COMPLETED.
func (o *Order) Complete(now time.Time) error {
	if o.status != StatusDeliveryInProgress {
		return NewStatusInvalidError(o.id, o.status, StatusCompleted)
	}

	o.status = StatusCompleted
	o.deliveredAt = &now
	return nil
}

// flagRefund records a refund obligation. Resolution is external: the
// reconciliation worker surfaces flagged orders, nothing here calls a
// payment gateway.
func (o *Order) flagRefund() {
	o.payStatus = PayStatusRefund
	o.events = append(o.events, NewRefundFlaggedEvent(o.id, o.number, o.amount))
}

// ============================================================================
// Reconstruction - repository layer only
// ============================================================================

// ReconstructionDTO rebuilds an Order from storage without exposing setters.
// Only the repository implementations use it.
type ReconstructionDTO struct {
	ID           string
	Number       string
	UserID       string
	Status       Status
	PayStatus    PayStatus
	Amount       shared.Money
	Consignee    string
	Phone        string
	Remark       string
	OrderedAt    time.Time
	CheckoutAt   *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
	Items        []LineItem
}

// RebuildFromDTO reconstructs an Order loaded from the store. The loaded
// status is remembered for the compare-and-set update guard.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:           dto.ID,
		number:       dto.Number,
		userID:       dto.UserID,
		status:       dto.Status,
		payStatus:    dto.PayStatus,
		amount:       dto.Amount,
		consignee:    dto.Consignee,
		phone:        dto.Phone,
		remark:       dto.Remark,
		orderedAt:    dto.OrderedAt,
		checkoutAt:   dto.CheckoutAt,
		deliveredAt:  dto.DeliveredAt,
		cancelledAt:  dto.CancelledAt,
		cancelReason: dto.CancelReason,
		items:        dto.Items,
		loadedStatus: dto.Status,
	}
}

// ItemReconstructionDTO rebuilds a LineItem from storage.
type ItemReconstructionDTO struct {
	ID        string
	OrderID   string
	DishID    string
	Name      string
	Flavor    string
	Quantity  int
	UnitPrice shared.Money
	Amount    shared.Money
}

// RebuildItemFromDTO reconstructs a LineItem loaded from the store.
func RebuildItemFromDTO(dto ItemReconstructionDTO) LineItem {
	return LineItem{
		id:        dto.ID,
		orderID:   dto.OrderID,
		dishID:    dto.DishID,
		name:      dto.Name,
		flavor:    dto.Flavor,
		quantity:  dto.Quantity,
		unitPrice: dto.UnitPrice,
		amount:    dto.Amount,
	}
}

// ============================================================================
// Read-only accessors
// ============================================================================

func (o *Order) ID() string            { return o.id }
func (o *Order) Number() string        { return o.number }
func (o *Order) UserID() string        { return o.userID }
func (o *Order) Status() Status        { return o.status }
func (o *Order) PayStatus() PayStatus  { return o.payStatus }
func (o *Order) Amount() shared.Money  { return o.amount }
func (o *Order) Consignee() string     { return o.consignee }
func (o *Order) Phone() string         { return o.phone }
func (o *Order) Remark() string        { return o.remark }
func (o *Order) OrderedAt() time.Time  { return o.orderedAt }
func (o *Order) CancelReason() string  { return o.cancelReason }

func (o *Order) CheckoutAt() *time.Time  { return o.checkoutAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// LoadedStatus is the status as read from the store, used by repositories
// as the expected value of the compare-and-set update.
func (o *Order) LoadedStatus() Status { return o.loadedStatus }

// IsNew reports whether the aggregate was created in this process rather
// than loaded from the store.
func (o *Order) IsNew() bool { return o.isNew }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// PullEvents returns and clears the recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

// ClearPersistenceState marks the aggregate as stored: the current status
// becomes the new loaded status. Repositories call this after a successful
// save.
func (o *Order) ClearPersistenceState() {
	o.loadedStatus = o.status
	o.isNew = false
}

// LineItem accessors.

func (it LineItem) ID() string               { return it.id }
func (it LineItem) OrderID() string          { return it.orderID }
func (it LineItem) DishID() string           { return it.dishID }
func (it LineItem) Name() string             { return it.name }
func (it LineItem) Flavor() string           { return it.flavor }
func (it LineItem) Quantity() int            { return it.quantity }
func (it LineItem) UnitPrice() shared.Money  { return it.unitPrice }
func (it LineItem) Amount() shared.Money     { return it.amount }

var _ shared.AggregateRoot = (*Order)(nil)
