package orders

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk/internal/domain"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

const (
	maxOrderNumberLen  = 50
	maxCustomerNameLen = 100
	maxPhoneLen        = 20
	maxNotesLen        = 500
	maxAdminNotesLen   = 1000
)

// Validate schema-checks the payload and reports every violation at once.
// The same rule set applies to create and update. A nil return means the
// payload is valid.
func Validate(p *Payload) *domain.ValidationError {
	var fields []domain.FieldError

	addError := func(field, message string) {
		fields = append(fields, domain.FieldError{Field: field, Message: message})
	}

	// Limits count characters, not bytes, so multibyte names get the full
	// budget.
	if p.OrderNumber == nil || *p.OrderNumber == "" {
		addError("orderNumber", "Order number is required")
	} else if utf8.RuneCountInString(*p.OrderNumber) > maxOrderNumberLen {
		addError("orderNumber", "Order number cannot be more than 50 characters")
	}

	if p.CustomerName == nil || *p.CustomerName == "" {
		addError("customerName", "Customer name is required")
	} else if utf8.RuneCountInString(*p.CustomerName) > maxCustomerNameLen {
		addError("customerName", "Customer name cannot be more than 100 characters")
	}

	if p.CustomerEmail == nil || !emailPattern.MatchString(*p.CustomerEmail) {
		addError("customerEmail", "Please provide a valid customer email")
	}

	if p.CustomerPhone != nil && utf8.RuneCountInString(*p.CustomerPhone) > maxPhoneLen {
		addError("customerPhone", "Phone number cannot be more than 20 characters")
	}

	if len(p.Items) == 0 {
		addError("items", "Order must have at least one item")
	}
	for i, item := range p.Items {
		if item.ProductName == nil || *item.ProductName == "" {
			addError(fmt.Sprintf("items[%d].productName", i), "Product name is required")
		}
		if item.Quantity == nil || *item.Quantity < 1 {
			addError(fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1")
		}
		if item.Price == nil || item.Price.LessThan(decimal.Zero) {
			addError(fmt.Sprintf("items[%d].price", i), "Price must be a positive number")
		}
	}

	if p.TotalAmount != nil && p.TotalAmount.LessThan(decimal.Zero) {
		addError("totalAmount", "Total amount must be a positive number")
	}

	if p.Status != nil && !domain.OrderStatus(*p.Status).Valid() {
		addError("status", "Invalid status")
	}

	if p.PaymentStatus != nil && !domain.PaymentStatus(*p.PaymentStatus).Valid() {
		addError("paymentStatus", "Invalid payment status")
	}

	if p.Notes != nil && utf8.RuneCountInString(*p.Notes) > maxNotesLen {
		addError("notes", "Notes cannot be more than 500 characters")
	}

	// Privileged fields are validated even for callers that cannot set
	// them; the filter strips the values afterwards but the errors still
	// surface.
	if p.AssignedTo != nil {
		if _, err := uuid.Parse(*p.AssignedTo); err != nil {
			addError("assignedTo", "AssignedTo must be a valid user ID")
		}
	}

	if p.AdminNotes != nil && utf8.RuneCountInString(*p.AdminNotes) > maxAdminNotesLen {
		addError("adminNotes", "Admin notes cannot be more than 1000 characters")
	}

	if p.Priority != nil && !domain.Priority(*p.Priority).Valid() {
		addError("priority", "Priority must be low, medium, high, or urgent")
	}

	if p.EstimatedDeliveryDate != nil {
		if _, err := parseDate(*p.EstimatedDeliveryDate); err != nil {
			addError("estimatedDeliveryDate", "Estimated delivery date must be a valid date")
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}
