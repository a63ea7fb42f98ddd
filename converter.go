// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrUnknownEnumConstant is the cause of a ConversionError produced when a value
// does not match any constant of an Enum type.
var ErrUnknownEnumConstant = errors.New("no enum constant with this name")

// Converter converts a raw configuration value into a typed value and back.
type Converter interface {
	// FromString parses the raw value.
	// A ConversionError should be returned if the value cannot be parsed.
	FromString(value string) (any, error)
	// ToString renders a typed value as raw value.
	ToString(value any) (string, error)
}

// ValueConverter is the typed contract for a converter.
// Use RegisterConverter / RegisterCustomConverter to make it available for lookups.
type ValueConverter[T any] interface {
	// FromString parses the raw value.
	FromString(value string) (T, error)
	// ToString renders a typed value as raw value.
	ToString(value T) string
}

// ConverterFunc returns a ValueConverter based on given parse and render functions.
func ConverterFunc[T any](fromString func(value string) (T, error), toString func(value T) string) ValueConverter[T] {
	return converterFuncs[T]{fromString: fromString, toString: toString}
}

type converterFuncs[T any] struct {
	fromString func(string) (T, error)
	toString   func(T) string
}

func (conv converterFuncs[T]) FromString(value string) (T, error) {
	return conv.fromString(value)
}

func (conv converterFuncs[T]) ToString(value T) string {
	return conv.toString(value)
}

// AsConverter adapts a ValueConverter to the untyped Converter contract.
func AsConverter[T any](conv ValueConverter[T]) Converter {
	return typedConverter[T]{conv: conv, typ: reflect.TypeFor[T]()}
}

// typedConverter adapts a ValueConverter to Converter.
type typedConverter[T any] struct {
	conv ValueConverter[T]
	typ  reflect.Type
}

func (adapter typedConverter[T]) FromString(value string) (any, error) {
	typedValue, err := adapter.conv.FromString(value)
	if err != nil {
		var convErr ConversionError
		if errors.As(err, &convErr) {
			return nil, err
		}

		return nil, NewConversionError(value, adapter.typ, err)
	}

	return typedValue, nil
}

func (adapter typedConverter[T]) ToString(value any) (string, error) {
	typedValue, ok := value.(T)
	if !ok {
		return "", fmt.Errorf("expected a value of type %s, got %T", adapter.typ, value)
	}

	return adapter.conv.ToString(typedValue), nil
}

// Enum is implemented by named types with a finite set of declared constants.
// Values of such a type can be looked up without registering a converter:
// a raw value is matched, case-sensitive, against constants' String().
//
// Usage example:
//
//	type Color int
//
//	const (
//		Red Color = iota
//		Green
//	)
//
//	func (c Color) String() string {
//		switch c {
//		case Red:
//			return "Red"
//		case Green:
//			return "Green"
//		}
//		return "Color(" + strconv.Itoa(int(c)) + ")"
//	}
//
//	func (Color) EnumConstants() []fmt.Stringer {
//		return []fmt.Stringer{Red, Green}
//	}
type Enum interface {
	fmt.Stringer
	// EnumConstants returns all declared constants of the type.
	EnumConstants() []fmt.Stringer
}

var enumType = reflect.TypeFor[Enum]()

// enumConverter is the converter derived for an Enum type.
type enumConverter struct {
	typ       reflect.Type
	constants []fmt.Stringer
}

// newEnumConverter returns a converter for typ, if typ is a (non-pointer,
// non-interface) type implementing Enum.
func newEnumConverter(typ reflect.Type) (enumConverter, bool) {
	if typ.Kind() == reflect.Interface || typ.Kind() == reflect.Pointer || !typ.Implements(enumType) {
		return enumConverter{}, false
	}
	enum, _ := reflect.Zero(typ).Interface().(Enum)

	return enumConverter{typ: typ, constants: enum.EnumConstants()}, true
}

func (conv enumConverter) FromString(value string) (any, error) {
	for _, constant := range conv.constants {
		if reflect.TypeOf(constant) == conv.typ && constant.String() == value {
			return constant, nil
		}
	}

	return nil, NewConversionError(value, conv.typ, ErrUnknownEnumConstant)
}

func (conv enumConverter) ToString(value any) (string, error) {
	if reflect.TypeOf(value) != conv.typ {
		return "", fmt.Errorf("expected a value of type %s, got %T", conv.typ, value)
	}

	return value.(fmt.Stringer).String(), nil
}

// ConverterRegistry holds the converters available for lookups, keyed by type.
// It is safe for concurrent use.
type ConverterRegistry struct {
	converters map[reflect.Type]Converter
	mu         *sync.RWMutex
}

// NewConverterRegistry instantiates a new registry, with built-in converters
// already registered for: bool, string, int, int8, int16, int32, int64,
// uint, uint8, uint16, uint32, uint64, float32, float64, time.Duration, language.Tag.
func NewConverterRegistry() *ConverterRegistry {
	registry := &ConverterRegistry{
		converters: make(map[reflect.Type]Converter),
		mu:         new(sync.RWMutex),
	}
	registerBuiltinConverters(registry)

	return registry
}

// Register sets the converter for given type.
// An already registered converter for the same type gets overwritten.
func (registry *ConverterRegistry) Register(typ reflect.Type, conv Converter) {
	if typ == nil || conv == nil {
		return
	}
	registry.mu.Lock()
	registry.converters[typ] = conv
	registry.mu.Unlock()
}

// Resolve returns the converter for given type.
// The lookup is made on the exact type. If nothing is registered for it and the type
// implements Enum, a converter based on type's constants is returned.
// Otherwise, an UnsupportedTypeError is returned.
func (registry *ConverterRegistry) Resolve(typ reflect.Type) (Converter, error) {
	if typ == nil {
		return nil, NewUnsupportedTypeError(typ)
	}

	registry.mu.RLock()
	conv, found := registry.converters[typ]
	registry.mu.RUnlock()
	if found {
		return conv, nil
	}

	if enumConv, isEnum := newEnumConverter(typ); isEnum {
		return enumConv, nil
	}

	return nil, NewUnsupportedTypeError(typ)
}

// RegisterConverter registers given converter for type T on the given registry.
func RegisterConverter[T any](registry *ConverterRegistry, conv ValueConverter[T]) {
	registry.Register(reflect.TypeFor[T](), AsConverter(conv))
}

// defaultConverterRegistry is the process-wide registry.
var defaultConverterRegistry = NewConverterRegistry()

// DefaultConverterRegistry returns the process-wide registry, used by
// configurations which were not given a registry explicitly.
func DefaultConverterRegistry() *ConverterRegistry {
	return defaultConverterRegistry
}

// RegisterCustomConverter registers given converter for type T on the process-wide registry.
// The converter becomes visible to every Configuration using that registry,
// including those built before this call.
func RegisterCustomConverter[T any](conv ValueConverter[T]) {
	RegisterConverter(defaultConverterRegistry, conv)
}

// ConversionError is returned when a raw value cannot be converted into
// the requested type.
type ConversionError struct {
	key   string       // the configuration key, if known.
	value string       // the raw value.
	typ   reflect.Type // the requested type.
	err   error        // the cause.
}

// NewConversionError instantiates a new ConversionError.
// The raw value, the requested type and an optional cause must be provided.
func NewConversionError(value string, typ reflect.Type, cause error) ConversionError {
	return ConversionError{value: value, typ: typ, err: cause}
}

// Error returns string representation of the ConversionError.
// It implements standard go error interface.
func (e ConversionError) Error() string {
	msg := fmt.Sprintf("could not convert %q to %v", e.value, e.typ)
	if e.key != "" {
		msg = fmt.Sprintf("key %q: %s", e.key, msg)
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}

	return msg
}

// Unwrap returns the cause of the error.
func (e ConversionError) Unwrap() error {
	return e.err
}

// Key returns the configuration key whose value failed to convert.
// It can be empty if the error did not reach the configuration level.
func (e ConversionError) Key() string {
	return e.key
}

// Value returns the raw value which failed to convert.
func (e ConversionError) Value() string {
	return e.value
}

// Type returns the requested type.
func (e ConversionError) Type() reflect.Type {
	return e.typ
}

// withKey returns a copy of the error bound to a configuration key.
func (e ConversionError) withKey(key string) ConversionError {
	e.key = key

	return e
}

// UnsupportedTypeError is returned when no converter exists for the requested type.
// It denotes a usage/registration mistake rather than bad configuration data.
type UnsupportedTypeError struct {
	typ reflect.Type // the requested type.
}

// NewUnsupportedTypeError instantiates a new UnsupportedTypeError.
func NewUnsupportedTypeError(typ reflect.Type) UnsupportedTypeError {
	return UnsupportedTypeError{typ: typ}
}

// Error returns string representation of the UnsupportedTypeError.
// It implements standard go error interface.
func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no converter registered for type %v", e.typ)
}

// Type returns the requested type.
func (e UnsupportedTypeError) Type() reflect.Type {
	return e.typ
}
