package order

// Status is the fulfillment state of an order. The numeric values are part
// of the persisted contract and of the client API, do not renumber.
type Status int

const (
	StatusPendingPayment     Status = 1
	StatusToBeConfirmed      Status = 2
	StatusConfirmed          Status = 3
	StatusDeliveryInProgress Status = 4
	StatusCompleted          Status = 5
	StatusCancelled          Status = 6
)

// transitions is the full set of legal status edges. Cancellation is the
// only edge that leaves the forward path.
var transitions = map[Status]map[Status]bool{
	StatusPendingPayment:     {StatusToBeConfirmed: true, StatusCancelled: true},
	StatusToBeConfirmed:      {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:          {StatusDeliveryInProgress: true, StatusCancelled: true},
	StatusDeliveryInProgress: {StatusCompleted: true},
}

// CanTransitionTo reports whether the edge s -> next is in the machine.
func (s Status) CanTransitionTo(next Status) bool {
	return transitions[s][next]
}

// IsTerminal reports whether no edge leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s >= StatusPendingPayment && s <= StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusPendingPayment:
		return "PENDING_PAYMENT"
	case StatusToBeConfirmed:
		return "TO_BE_CONFIRMED"
	case StatusConfirmed:
		return "CONFIRMED"
	case StatusDeliveryInProgress:
		return "DELIVERY_IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// PayStatus is the settlement state of the funds for an order. It is
// independent of the fulfillment Status and only ever moves forward:
// UNPAID -> PAID -> REFUND.
type PayStatus int

const (
	PayStatusUnpaid PayStatus = 0
	PayStatusPaid   PayStatus = 1
	PayStatusRefund PayStatus = 2
)

// CanTransitionTo enforces the forward-only settlement path.
func (p PayStatus) CanTransitionTo(next PayStatus) bool {
	return next == p+1
}

func (p PayStatus) String() string {
	switch p {
	case PayStatusUnpaid:
		return "UNPAID"
	case PayStatusPaid:
		return "PAID"
	case PayStatusRefund:
		return "REFUND"
	default:
		return "UNKNOWN"
	}
}
