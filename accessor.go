package gridsheet

import (
	"fmt"
	"reflect"
	"sync"
)

// Accessor projects a named property out of a cell's bound data object.
type Accessor interface {
	Get(data any, key string) (any, error)
	Set(data any, key string, value any) error
}

// AccessorFuncs adapts a pair of functions to the Accessor interface.
type AccessorFuncs struct {
	GetFunc func(data any, key string) (any, error)
	SetFunc func(data any, key string, value any) error
}

func (a AccessorFuncs) Get(data any, key string) (any, error) {
	if a.GetFunc == nil {
		return nil, fmt.Errorf("get %q: %w", key, ErrNoProperty)
	}
	return a.GetFunc(data, key)
}

func (a AccessorFuncs) Set(data any, key string, value any) error {
	if a.SetFunc == nil {
		return fmt.Errorf("set %q: %w", key, ErrNoProperty)
	}
	return a.SetFunc(data, key, value)
}

// MapAccessor reads and writes entries of a map[string]any.
type MapAccessor struct{}

func (MapAccessor) Get(data any, key string) (any, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("get %q from %T: %w", key, data, ErrNoProperty)
	}
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNoProperty)
	}
	return v, nil
}

func (MapAccessor) Set(data any, key string, value any) error {
	m, ok := data.(map[string]any)
	if !ok || m == nil {
		return fmt.Errorf("set %q on %T: %w", key, data, ErrNoProperty)
	}
	if old, exists := m[key]; exists && old != nil && value != nil {
		converted, err := convertTo(value, reflect.TypeOf(old))
		if err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
		value = converted
	}
	m[key] = value
	return nil
}

// FieldAccessor reads and writes exported struct fields by name. Field
// lookups are resolved once per struct type and cached.
type FieldAccessor struct {
	cache sync.Map // fieldKey → []int (field index path)
}

type fieldKey struct {
	typ  reflect.Type
	name string
}

func (a *FieldAccessor) field(data any, key string) (reflect.Value, error) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("field %q of nil %T: %w", key, data, ErrNoProperty)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("field %q of %T: %w", key, data, ErrNoProperty)
	}

	fk := fieldKey{typ: v.Type(), name: key}
	if idx, ok := a.cache.Load(fk); ok {
		return v.FieldByIndex(idx.([]int)), nil
	}
	sf, ok := v.Type().FieldByName(key)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, fmt.Errorf("field %q of %T: %w", key, data, ErrNoProperty)
	}
	a.cache.Store(fk, sf.Index)
	return v.FieldByIndex(sf.Index), nil
}

func (a *FieldAccessor) Get(data any, key string) (any, error) {
	f, err := a.field(data, key)
	if err != nil {
		return nil, err
	}
	if f.Kind() == reflect.Pointer {
		if f.IsNil() {
			return nil, nil
		}
		return f.Elem().Interface(), nil
	}
	return f.Interface(), nil
}

func (a *FieldAccessor) Set(data any, key string, value any) error {
	f, err := a.field(data, key)
	if err != nil {
		return err
	}
	if !f.CanSet() {
		return fmt.Errorf("field %q of %T is not addressable: %w", key, data, ErrNoProperty)
	}
	converted, err := convertTo(value, f.Type())
	if err != nil {
		return fmt.Errorf("set field %q: %w", key, err)
	}
	if converted == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	f.Set(reflect.ValueOf(converted))
	return nil
}

// defaultAccessor handles map[string]any data and struct (pointer) data.
type defaultAccessor struct {
	fields FieldAccessor
}

var sharedAccessor = &defaultAccessor{}

func (a *defaultAccessor) Get(data any, key string) (any, error) {
	if _, ok := data.(map[string]any); ok {
		return MapAccessor{}.Get(data, key)
	}
	return a.fields.Get(data, key)
}

func (a *defaultAccessor) Set(data any, key string, value any) error {
	if _, ok := data.(map[string]any); ok {
		return MapAccessor{}.Set(data, key, value)
	}
	return a.fields.Set(data, key, value)
}
