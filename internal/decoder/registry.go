package decoder

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/goran-ethernal/TicketIndexor/internal/logger"
)

// Factory returns an empty typed event.
type Factory func() Event

// Schema maps a contract event to its typed value.
type Schema struct {
	Module string
	Name   string
	New    Factory
}

// Key is "<module>.<event>".
func (s Schema) Key() string {
	return schemaKey(s.Module, s.Name)
}

var (
	registry = make(map[string]Schema)
	mu       sync.RWMutex
)

func schemaKey(module, name string) string {
	return module + "." + name
}

// Register adds a schema for module's event name. It is called from init functions.
func Register(module, name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	key := schemaKey(module, name)
	if _, exists := registry[key]; exists {
		logger.GetDefaultLogger().Infof("schema %s already registered, it will be overwritten", key)
	}

	registry[key] = Schema{Module: module, Name: name, New: factory}
}

// Lookup returns the schema registered for module's event name.
func Lookup(module, name string) (Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := registry[schemaKey(module, name)]
	return s, ok
}

// ListRegistered returns all registered schema keys, sorted.
func ListRegistered() []string {
	mu.RLock()
	defer mu.RUnlock()

	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build validates fields against the schema and returns the typed event.
// Every abi-tagged field must be present with a compatible type.
func (s Schema) Build(fields map[string]any) (Event, error) {
	ev := s.New()
	if err := fill(reflect.ValueOf(ev).Elem(), fields); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Key(), err)
	}
	return ev, nil
}

func fill(v reflect.Value, fields map[string]any) error {
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		fv := v.Field(i)

		tag, tagged := sf.Tag.Lookup("abi")
		if !tagged {
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				if err := fill(fv, fields); err != nil {
					return err
				}
			}
			continue
		}

		raw, ok := fields[tag]
		if !ok {
			return fmt.Errorf("missing field %q", tag)
		}
		if err := assign(fv, raw); err != nil {
			return fmt.Errorf("field %q: %w", tag, err)
		}
	}
	return nil
}

func assign(dst reflect.Value, raw any) error {
	src := reflect.ValueOf(raw)
	if !src.IsValid() {
		return fmt.Errorf("nil value")
	}

	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
	case src.Kind() == dst.Kind() && src.Type().ConvertibleTo(dst.Type()):
		// named byte arrays such as common.Hash
		dst.Set(src.Convert(dst.Type()))
	case src.Kind() == reflect.Slice && dst.Kind() == reflect.Array &&
		src.Type().Elem() == dst.Type().Elem() && src.Len() == dst.Len():
		reflect.Copy(dst, src)
	default:
		return fmt.Errorf("cannot use %s as %s", src.Type(), dst.Type())
	}
	return nil
}
