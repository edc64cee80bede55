package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// Payload is the decoded request body for order create and update. Pointer
// fields record whether a key was present, which lets the privileged-field
// filter strip keys and lets updates leave absent fields untouched.
type Payload struct {
	OrderNumber           *string          `json:"orderNumber"`
	CustomerName          *string          `json:"customerName"`
	CustomerEmail         *string          `json:"customerEmail"`
	CustomerPhone         *string          `json:"customerPhone"`
	Items                 []ItemPayload    `json:"items"`
	TotalAmount           *decimal.Decimal `json:"totalAmount"`
	Status                *string          `json:"status"`
	PaymentStatus         *string          `json:"paymentStatus"`
	ShippingAddress       *AddressPayload  `json:"shippingAddress"`
	Notes                 *string          `json:"notes"`
	AssignedTo            *string          `json:"assignedTo"`
	AdminNotes            *string          `json:"adminNotes"`
	Priority              *string          `json:"priority"`
	Tags                  []string         `json:"tags"`
	EstimatedDeliveryDate *string          `json:"estimatedDeliveryDate"`
}

type ItemPayload struct {
	ProductName *string          `json:"productName"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
}

type AddressPayload struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Country *string `json:"country"`
}

// Apply copies the payload's present fields onto the order. The client's
// totalAmount is deliberately never applied; the store derives it from the
// items inside the write transaction.
//
// A JSON null decodes to a nil pointer, indistinguishable from an absent
// key, so optional fields like assignedTo and estimatedDeliveryDate can be
// set but never cleared through this payload.
func (p *Payload) Apply(o *domain.Order) {
	if p.OrderNumber != nil {
		o.OrderNumber = *p.OrderNumber
	}
	if p.CustomerName != nil {
		o.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		o.CustomerEmail = strings.ToLower(*p.CustomerEmail)
	}
	if p.CustomerPhone != nil {
		o.CustomerPhone = *p.CustomerPhone
	}
	if p.Items != nil {
		items := make([]domain.OrderItem, 0, len(p.Items))
		for _, item := range p.Items {
			converted := domain.OrderItem{}
			if item.ProductName != nil {
				converted.ProductName = *item.ProductName
			}
			if item.Quantity != nil {
				converted.Quantity = *item.Quantity
			}
			if item.Price != nil {
				converted.Price = *item.Price
			}
			items = append(items, converted)
		}
		o.Items = items
	}
	if p.Status != nil {
		o.Status = domain.OrderStatus(*p.Status)
	}
	if p.PaymentStatus != nil {
		o.PaymentStatus = domain.PaymentStatus(*p.PaymentStatus)
	}
	if p.ShippingAddress != nil {
		o.ShippingAddr = p.ShippingAddress.toDomain()
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
	if p.AssignedTo != nil {
		assignee := *p.AssignedTo
		o.AssignedTo = &assignee
	}
	if p.AdminNotes != nil {
		notes := *p.AdminNotes
		o.AdminNotes = &notes
	}
	if p.Priority != nil {
		o.Priority = domain.Priority(*p.Priority)
	}
	if p.Tags != nil {
		o.Tags = p.Tags
	}
	if p.EstimatedDeliveryDate != nil {
		// Validate rejects unparseable dates before Apply runs; an error
		// here means the field was filtered or skipped upstream, so the
		// stored value is left alone.
		if parsed, err := parseDate(*p.EstimatedDeliveryDate); err == nil {
			o.EstimatedDeliveryDate = &parsed
		}
	}
}

func (a *AddressPayload) toDomain() *domain.ShippingAddress {
	addr := &domain.ShippingAddress{Country: "USA"}
	if a.Street != nil {
		addr.Street = *a.Street
	}
	if a.City != nil {
		addr.City = *a.City
	}
	if a.State != nil {
		addr.State = *a.State
	}
	if a.ZipCode != nil {
		addr.ZipCode = *a.ZipCode
	}
	if a.Country != nil && *a.Country != "" {
		addr.Country = *a.Country
	}
	return addr
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
