package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type OrderItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type ShippingAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Order is the aggregate persisted as one unit: the order row, its line
// items, and the embedded shipping address.
type Order struct {
	ID            string           `json:"id"`
	OrderNumber   string           `json:"orderNumber"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	CustomerPhone string           `json:"customerPhone,omitempty"`
	Items         []OrderItem      `json:"items"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	Status        OrderStatus      `json:"status"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`
	ShippingAddr  *ShippingAddress `json:"shippingAddress,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"createdBy"`

	// Admin-only fields. Read and write access is gated by the
	// PrivilegedFields classifier.
	AssignedTo            *string    `json:"assignedTo"`
	AdminNotes            *string    `json:"adminNotes"`
	Priority              Priority   `json:"priority"`
	Tags                  []string   `json:"tags"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ComputeTotal derives the order total from its line items. The store
// re-applies this inside every write that touches items; a client-supplied
// total is never trusted.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// PrivilegedFields is the single source of truth for admin-only payload
// keys. The request filter, the validator's conditional rules, and the
// response projection all consume this list; adding a privileged field
// means adding one entry here.
var PrivilegedFields = []string{
	"assignedTo",
	"adminNotes",
	"priority",
	"tags",
	"estimatedDeliveryDate",
	"dueDate",
}
