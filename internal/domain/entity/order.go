package entity

import (
	"fmt"
	"time"
)

// OrderStatus fulfilment state of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderSteps linear fulfilment sequence; cancelled sits outside it
var orderSteps = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
}

// OrderSteps returns the linear status sequence
func OrderSteps() []OrderStatus {
	return append([]OrderStatus(nil), orderSteps...)
}

// ParseOrderStatus parses a known status name
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if s == OrderCancelled || s.Index() >= 0 {
		return s, nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// Index position in the linear sequence, -1 for cancelled or unknown
func (s OrderStatus) Index() int {
	for i, step := range orderSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// IsTerminal delivered and cancelled accept no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanAdvance reports whether Advance would succeed
func (s OrderStatus) CanAdvance() bool {
	idx := s.Index()
	return idx >= 0 && idx < len(orderSteps)-1
}

// CanCancel reports whether Cancel would succeed
func (s OrderStatus) CanCancel() bool {
	return s.Index() >= 0 && !s.IsTerminal()
}

// Advance next status in the sequence
func (s OrderStatus) Advance() (OrderStatus, error) {
	if !s.CanAdvance() {
		return s, fmt.Errorf("%w: cannot advance from %s", ErrTransitionNotAllowed, s)
	}
	return orderSteps[s.Index()+1], nil
}

// Cancel jumps to cancelled from any non-terminal status
func (s OrderStatus) Cancel() (OrderStatus, error) {
	if !s.CanCancel() {
		return s, fmt.Errorf("%w: cannot cancel from %s", ErrTransitionNotAllowed, s)
	}
	return OrderCancelled, nil
}

// Order as returned by the API
type Order struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id,omitempty"`
	SubtotalCents   int64          `json:"subtotal_cents"`
	ShippingCents   int64          `json:"shipping_cents"`
	TaxCents        int64          `json:"tax_cents"`
	TotalCents      int64          `json:"total_cents"`
	Status          OrderStatus    `json:"status"`
	PlacedAt        time.Time      `json:"placed_at"`
	ShippingAddress map[string]any `json:"shipping_address,omitempty"`
	PaymentMetadata map[string]any `json:"payment_metadata,omitempty"`
	Items           []OrderItem    `json:"items,omitempty"`
}

// OrderItem line of an order
type OrderItem struct {
	ID             string `json:"id"`
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// StepView one stepper bubble
type StepView struct {
	Status  OrderStatus `json:"status"`
	Done    bool        `json:"done"`
	Current bool        `json:"current"`
}

// Steps rendering data for the stepper. A cancelled order shows no active step.
func (o Order) Steps() []StepView {
	current := o.Status.Index()
	views := make([]StepView, len(orderSteps))
	for i, step := range orderSteps {
		views[i] = StepView{
			Status:  step,
			Done:    current >= 0 && i <= current,
			Current: current >= 0 && i == current,
		}
	}
	return views
}

// ProgressPercent width of the stepper progress bar
func (o Order) ProgressPercent() int {
	current := o.Status.Index()
	if current < 0 {
		return 0
	}
	return current * 100 / (len(orderSteps) - 1)
}
