package orders

import "github.com/orderdesk/orderdesk/internal/domain"

type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Authorize decides whether the caller may perform op on an order owned by
// ownerID. Admins may do anything; everyone else only touches their own
// orders. Callers must resolve existence first so not-found takes precedence
// over forbidden.
func Authorize(callerID string, role domain.Role, ownerID string, op Operation) error {
	if role == domain.RoleAdmin {
		return nil
	}
	if callerID == ownerID {
		return nil
	}
	return domain.ErrForbidden
}
