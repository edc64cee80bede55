package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// View is the serialized form of an order. Owner and assignee references are
// denormalized into {id, name, email} summaries. Privileged fields are
// omitted entirely for non-admin viewers, mirroring the write-side filter.
type View struct {
	ID            string                  `json:"id"`
	OrderNumber   string                  `json:"orderNumber"`
	CustomerName  string                  `json:"customerName"`
	CustomerEmail string                  `json:"customerEmail"`
	CustomerPhone string                  `json:"customerPhone,omitempty"`
	Items         []domain.OrderItem      `json:"items"`
	TotalAmount   decimal.Decimal         `json:"totalAmount"`
	Status        domain.OrderStatus      `json:"status"`
	PaymentStatus domain.PaymentStatus    `json:"paymentStatus"`
	ShippingAddr  *domain.ShippingAddress `json:"shippingAddress,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
	CreatedBy     domain.UserSummary      `json:"createdBy"`

	AssignedTo            *domain.UserSummary `json:"assignedTo,omitempty"`
	AdminNotes            *string             `json:"adminNotes,omitempty"`
	Priority              domain.Priority     `json:"priority,omitempty"`
	Tags                  []string            `json:"tags,omitempty"`
	EstimatedDeliveryDate *time.Time          `json:"estimatedDeliveryDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewView projects an order for a viewer with the given role. The summaries
// map is keyed by user id and must contain at least the order's creator.
func NewView(o *domain.Order, summaries map[string]domain.UserSummary, viewer domain.Role) View {
	view := View{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Items:         o.Items,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		ShippingAddr:  o.ShippingAddr,
		Notes:         o.Notes,
		CreatedBy:     summaries[o.CreatedBy],

		AdminNotes:            o.AdminNotes,
		Priority:              o.Priority,
		Tags:                  o.Tags,
		EstimatedDeliveryDate: o.EstimatedDeliveryDate,
	}
	view.CreatedAt = o.CreatedAt
	view.UpdatedAt = o.UpdatedAt

	if o.AssignedTo != nil {
		if summary, ok := summaries[*o.AssignedTo]; ok {
			view.AssignedTo = &summary
		} else {
			view.AssignedTo = &domain.UserSummary{ID: *o.AssignedTo}
		}
	}

	if viewer != domain.RoleAdmin {
		zeroPrivileged(&view)
	}

	return view
}
