// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"golang.org/x/text/language"
)

// Configuration provides typed access to the configuration resolved by a Provider.
// It is immutable and safe for concurrent use.
type Configuration struct {
	provider *Provider
	registry *ConverterRegistry
}

// NewConfiguration instantiates a new Configuration upon given provider.
// If registry is nil, the process-wide registry is used.
//
// Usually, you would obtain a Configuration through a Builder.
func NewConfiguration(provider *Provider, registry *ConverterRegistry) *Configuration {
	if registry == nil {
		registry = DefaultConverterRegistry()
	}

	return &Configuration{
		provider: provider.clone(),
		registry: registry,
	}
}

// Tags returns the active tags, most specific first.
func (cfg *Configuration) Tags() []string {
	return cfg.provider.Tags()
}

// Has returns true if the key can be resolved.
func (cfg *Configuration) Has(key string) bool {
	_, err := cfg.provider.Resolve(key)

	return err == nil
}

// Evaluate resolves a key and converts its value into the given type.
//
// A MissingPropertyError is returned if the key does not exist,
// an UnsupportedTypeError if there is no converter for the given type,
// a ConversionError if the raw value is not suitable for the given type.
func (cfg *Configuration) Evaluate(typ reflect.Type, key string) (any, error) {
	rawValue, err := cfg.provider.Resolve(key)
	if err != nil {
		return nil, err
	}

	return cfg.convert(typ, key, rawValue)
}

// EvaluateWithDefault is like Evaluate, but returns def if the key does not exist.
// Other errors are still returned.
func (cfg *Configuration) EvaluateWithDefault(typ reflect.Type, key string, def any) (any, error) {
	value, err := cfg.Evaluate(typ, key)
	if isMissingProperty(err) {
		return def, nil
	}

	return value, err
}

// convert converts a key's raw value into given type.
func (cfg *Configuration) convert(typ reflect.Type, key, rawValue string) (any, error) {
	conv, err := cfg.registry.Resolve(typ)
	if err != nil {
		return nil, err
	}
	value, err := conv.FromString(rawValue)
	if err != nil {
		var convErr ConversionError
		if !errors.As(err, &convErr) {
			convErr = NewConversionError(rawValue, typ, err)
		}

		return nil, convErr.withKey(key)
	}

	return value, nil
}

// EvaluateTo resolves a key and converts its value into T.
// See Configuration.Evaluate for the possible errors.
func EvaluateTo[T any](cfg *Configuration, key string) (T, error) {
	var zero T
	typ := reflect.TypeFor[T]()
	value, err := cfg.Evaluate(typ, key)
	if err != nil {
		return zero, err
	}

	return typedValue[T](typ, key, value)
}

// EvaluateToWithDefault is like EvaluateTo, but returns def if the key does not exist.
func EvaluateToWithDefault[T any](cfg *Configuration, key string, def T) (T, error) {
	value, err := EvaluateTo[T](cfg, key)
	if isMissingProperty(err) {
		return def, nil
	}

	return value, err
}

// EvaluateToAll returns all the values of a key, converted into T, most
// specific first (see Provider.ResolveAll).
// An empty list is returned if the key does not exist.
func EvaluateToAll[T any](cfg *Configuration, key string) ([]T, error) {
	rawValues, err := cfg.provider.ResolveAll(key)
	if err != nil {
		return nil, err
	}

	typ := reflect.TypeFor[T]()
	result := make([]T, 0, len(rawValues))
	for _, rawValue := range rawValues {
		value, err := cfg.convert(typ, key, rawValue)
		if err != nil {
			return nil, err
		}
		typed, err := typedValue[T](typ, key, value)
		if err != nil {
			return nil, err
		}
		result = append(result, typed)
	}

	return result, nil
}

// typedValue asserts a converted value to T.
func typedValue[T any](typ reflect.Type, key string, value any) (T, error) {
	typed, ok := value.(T)
	if !ok {
		var zero T
		cause := fmt.Errorf("converter returned a value of type %T", value)

		return zero, NewConversionError(fmt.Sprint(value), typ, cause).withKey(key)
	}

	return typed, nil
}

// isMissingProperty checks if err is a MissingPropertyError.
func isMissingProperty(err error) bool {
	var missingErr MissingPropertyError

	return errors.As(err, &missingErr)
}

// EvaluateToString returns key's value.
func (cfg *Configuration) EvaluateToString(key string) (string, error) {
	return EvaluateTo[string](cfg, key)
}

// EvaluateToBool returns key's value as a boolean ("true" / "false", case insensitive).
func (cfg *Configuration) EvaluateToBool(key string) (bool, error) {
	return EvaluateTo[bool](cfg, key)
}

// EvaluateToInt returns key's value as an int.
func (cfg *Configuration) EvaluateToInt(key string) (int, error) {
	return EvaluateTo[int](cfg, key)
}

// EvaluateToInt8 returns key's value as an int8.
func (cfg *Configuration) EvaluateToInt8(key string) (int8, error) {
	return EvaluateTo[int8](cfg, key)
}

// EvaluateToInt16 returns key's value as an int16.
func (cfg *Configuration) EvaluateToInt16(key string) (int16, error) {
	return EvaluateTo[int16](cfg, key)
}

// EvaluateToInt32 returns key's value as an int32.
func (cfg *Configuration) EvaluateToInt32(key string) (int32, error) {
	return EvaluateTo[int32](cfg, key)
}

// EvaluateToInt64 returns key's value as an int64.
func (cfg *Configuration) EvaluateToInt64(key string) (int64, error) {
	return EvaluateTo[int64](cfg, key)
}

// EvaluateToFloat32 returns key's value as a float32.
func (cfg *Configuration) EvaluateToFloat32(key string) (float32, error) {
	return EvaluateTo[float32](cfg, key)
}

// EvaluateToFloat64 returns key's value as a float64.
func (cfg *Configuration) EvaluateToFloat64(key string) (float64, error) {
	return EvaluateTo[float64](cfg, key)
}

// EvaluateToDuration returns key's value as a time.Duration.
func (cfg *Configuration) EvaluateToDuration(key string) (time.Duration, error) {
	return EvaluateTo[time.Duration](cfg, key)
}

// EvaluateToLocale returns key's value (like "en_US") as a language tag.
func (cfg *Configuration) EvaluateToLocale(key string) (language.Tag, error) {
	return EvaluateTo[language.Tag](cfg, key)
}
