package orders

import (
	"reflect"
	"strings"

	"github.com/orderdesk/orderdesk/internal/domain"
)

// FilterPrivileged strips every privileged field from the payload unless the
// caller is an admin. It runs after validation, so a non-admin submitting an
// invalid privileged value still sees the validation error even though the
// field never reaches the store.
func FilterPrivileged(p *Payload, role domain.Role) {
	if role == domain.RoleAdmin {
		return
	}
	zeroPrivileged(p)
}

// zeroPrivileged clears every field of the struct pointed to by v whose json
// tag appears in domain.PrivilegedFields. Matching by tag keeps the
// classifier the only place the admin-only list is written down; classifier
// entries with no corresponding field (dueDate on orders) are no-ops.
func zeroPrivileged(v any) {
	privileged := make(map[string]struct{}, len(domain.PrivilegedFields))
	for _, name := range domain.PrivilegedFields {
		privileged[name] = struct{}{}
	}

	value := reflect.ValueOf(v).Elem()
	structType := value.Type()
	for i := 0; i < structType.NumField(); i++ {
		tag, _, _ := strings.Cut(structType.Field(i).Tag.Get("json"), ",")
		if _, ok := privileged[tag]; ok {
			value.Field(i).SetZero()
		}
	}
}
