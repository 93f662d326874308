package models

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusRejected   OrderStatus = "REJECTED"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentCredit PaymentMethod = "credit"
)

// DateLayout is the calendar-date key format used by the order cache.
const DateLayout = "2006-01-02"

type OrderSource string

const (
	SourceLocal   OrderSource = "local"
	SourceBackend OrderSource = "backend"
)

type Order struct {
	ID         int64         `json:"id"`
	CustomerID string        `json:"customer_id"`
	CourierID  int64         `json:"courier_id"`
	Date       string        `json:"date"`
	BidonCount int           `json:"bidon_count"`
	Amount     int64         `json:"amount"` // qepik
	Status     OrderStatus   `json:"status"`
	Payment    PaymentMethod `json:"payment_method,omitempty"`
	Source     OrderSource   `json:"source"`
	CreatedAt  time.Time     `json:"created_at"`

	// Ephemeral marks backend orders whose ID is positional because the
	// upstream response carried no stable identifier. Destructive calls
	// against such IDs are refused.
	Ephemeral bool `json:"ephemeral,omitempty"`

	// Display fields resolved during enrichment.
	CustomerFullName string `json:"customer_full_name,omitempty"`
	CustomerPhone    string `json:"customer_phone,omitempty"`
	CustomerAddress  string `json:"customer_address,omitempty"`
	CourierFullName  string `json:"courier_full_name,omitempty"`
}

// IsCompleted reports the pending/completed partition used by filters:
// a local completed flag and a non-PENDING backend status are equivalent.
func (o *Order) IsCompleted() bool {
	return o.Status != StatusPending && o.Status != ""
}

// Earns reports whether the order contributes to revenue. Rejected orders
// sit on the completed side of the filter partition but earn nothing.
func (o *Order) Earns() bool {
	return o.Status == StatusCompleted
}

// OrderPatch is a partial order update. Nil fields are left untouched.
type OrderPatch struct {
	CourierID  *int64         `json:"courier_id,omitempty"`
	BidonCount *int           `json:"bidon_count,omitempty"`
	Amount     *int64         `json:"amount,omitempty"`
	Status     *OrderStatus   `json:"status,omitempty"`
	Payment    *PaymentMethod `json:"payment_method,omitempty"`
}

// Apply merges the patch into the order.
func (p OrderPatch) Apply(o *Order) {
	if p.CourierID != nil {
		o.CourierID = *p.CourierID
	}
	if p.BidonCount != nil {
		o.BidonCount = *p.BidonCount
	}
	if p.Amount != nil {
		o.Amount = *p.Amount
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Payment != nil {
		o.Payment = *p.Payment
	}
}

// DeliveryReport carries the metadata a courier records when completing
// an order.
type DeliveryReport struct {
	BidonsDelivered int           `json:"bidons_delivered"`
	BidonsCollected int           `json:"bidons_collected"`
	AmountPaid      int64         `json:"amount_paid"` // qepik
	Payment         PaymentMethod `json:"payment_method"`
}
