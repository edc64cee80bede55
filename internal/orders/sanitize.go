package orders

import (
	"reflect"
	"strings"
)

// Sanitize trims leading and trailing whitespace from every string field of
// the payload, including nested items and the shipping address. Non-string
// fields pass through unchanged; sanitizing never fails.
func Sanitize(p *Payload) {
	trimStrings(reflect.ValueOf(p))
}

func trimStrings(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			trimStrings(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() {
				continue
			}
			trimStrings(field)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			trimStrings(v.Index(i))
		}
	case reflect.String:
		v.SetString(strings.TrimSpace(v.String()))
	}
}
