package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"lower":       strings.ToLower,
		"trim_lower":  TrimToLower,
		"email":       NormalizeEmail,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"no_control":  RemoveControlChars,
		"text": func(s string) string {
			return RemoveExtraWhitespace(RemoveControlChars(s))
		},
	}
)

// ErrNotStructPointer is returned by SanitizeStruct for other targets.
var ErrNotStructPointer = errors.New("sanitizer: must pass a pointer to struct")

// RegisterSanitizer adds a custom sanitizer function to the registry.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct applies the `sanitize` tag of every string, *string and
// []string field in place. Nested structs are walked. Unknown sanitizer
// names are ignored; "max:N" truncates to N runes.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	walk(rv.Elem())
	return nil
}

func walk(rv reflect.Value) {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				field.SetString(apply(field.String(), tag))
			}
		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			switch elem := field.Elem(); elem.Kind() {
			case reflect.String:
				if tag != "" {
					elem.SetString(apply(elem.String(), tag))
				}
			case reflect.Struct:
				walk(elem)
			}
		case reflect.Struct:
			walk(field)
		case reflect.Slice:
			if tag != "" && field.Type().Elem().Kind() == reflect.String {
				for j := range field.Len() {
					elem := field.Index(j)
					elem.SetString(apply(elem.String(), tag))
				}
			}
		}
	}
}

func apply(value, tag string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if n, ok := strings.CutPrefix(name, "max:"); ok {
			if maxLen, err := strconv.Atoi(n); err == nil && maxLen > 0 {
				value = MaxLength(value, maxLen)
			}
			continue
		}
		if fn, ok := registry[name]; ok {
			value = fn(value)
		}
	}
	return value
}
