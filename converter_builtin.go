// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
)

var (
	// ErrNotBoolean is the cause of a ConversionError for a value which is not "true" / "false".
	ErrNotBoolean = errors.New("not a boolean literal")
	// ErrMalformedLocale is the cause of a ConversionError for a value not of the form
	// "language" or "language_COUNTRY".
	ErrMalformedLocale = errors.New("malformed locale, expected language_COUNTRY")
)

// registerBuiltinConverters registers converters for the basic types.
func registerBuiltinConverters(registry *ConverterRegistry) {
	RegisterConverter[string](registry, stringConverter{})
	RegisterConverter[bool](registry, boolConverter{})
	RegisterConverter[int](registry, signedConverter[int]{bitSize: strconv.IntSize})
	RegisterConverter[int8](registry, signedConverter[int8]{bitSize: 8})
	RegisterConverter[int16](registry, signedConverter[int16]{bitSize: 16})
	RegisterConverter[int32](registry, signedConverter[int32]{bitSize: 32})
	RegisterConverter[int64](registry, signedConverter[int64]{bitSize: 64})
	RegisterConverter[uint](registry, unsignedConverter[uint]{bitSize: strconv.IntSize})
	RegisterConverter[uint8](registry, unsignedConverter[uint8]{bitSize: 8})
	RegisterConverter[uint16](registry, unsignedConverter[uint16]{bitSize: 16})
	RegisterConverter[uint32](registry, unsignedConverter[uint32]{bitSize: 32})
	RegisterConverter[uint64](registry, unsignedConverter[uint64]{bitSize: 64})
	RegisterConverter[float32](registry, floatConverter[float32]{bitSize: 32})
	RegisterConverter[float64](registry, floatConverter[float64]{bitSize: 64})
	RegisterConverter[time.Duration](registry, durationConverter{})
	RegisterConverter[language.Tag](registry, localeConverter{})
}

type stringConverter struct{}

func (stringConverter) FromString(value string) (string, error) {
	return value, nil
}

func (stringConverter) ToString(value string) string {
	return value
}

// boolConverter accepts only "true" / "false", in any case.
type boolConverter struct{}

func (boolConverter) FromString(value string) (bool, error) {
	switch {
	case strings.EqualFold(value, "true"):
		return true, nil
	case strings.EqualFold(value, "false"):
		return false, nil
	}

	return false, ErrNotBoolean
}

func (boolConverter) ToString(value bool) string {
	return cast.ToString(value)
}

type signed interface {
	int | int8 | int16 | int32 | int64
}

// signedConverter parses base 10 integers, failing on overflow.
type signedConverter[T signed] struct {
	bitSize int
}

func (conv signedConverter[T]) FromString(value string) (T, error) {
	n, err := strconv.ParseInt(value, 10, conv.bitSize)
	if err != nil {
		return 0, err
	}

	return T(n), nil
}

func (signedConverter[T]) ToString(value T) string {
	return cast.ToString(value)
}

type unsigned interface {
	uint | uint8 | uint16 | uint32 | uint64
}

// unsignedConverter parses base 10 unsigned integers, failing on overflow.
type unsignedConverter[T unsigned] struct {
	bitSize int
}

func (conv unsignedConverter[T]) FromString(value string) (T, error) {
	n, err := strconv.ParseUint(value, 10, conv.bitSize)
	if err != nil {
		return 0, err
	}

	return T(n), nil
}

func (unsignedConverter[T]) ToString(value T) string {
	return cast.ToString(value)
}

// floatConverter parses floating point numbers.
// A trailing type suffix (f, F, d, D) is tolerated, and
// out of range values become ±Inf.
type floatConverter[T float32 | float64] struct {
	bitSize int
}

func (conv floatConverter[T]) FromString(value string) (T, error) {
	f, err := parseFloat(value, conv.bitSize)
	if err != nil {
		if n := len(value); n > 1 && strings.ContainsRune("fFdD", rune(value[n-1])) {
			f, err = parseFloat(value[:n-1], conv.bitSize)
		}
		if err != nil {
			return 0, err
		}
	}

	return T(f), nil
}

func (floatConverter[T]) ToString(value T) string {
	return cast.ToString(value)
}

// parseFloat parses a float, ignoring range errors (for which ±Inf is returned).
func parseFloat(value string, bitSize int) (float64, error) {
	f, err := strconv.ParseFloat(value, bitSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}

	return f, nil
}

type durationConverter struct{}

func (durationConverter) FromString(value string) (time.Duration, error) {
	return time.ParseDuration(value)
}

func (durationConverter) ToString(value time.Duration) string {
	return value.String()
}

// localeConverter parses "language" / "language_COUNTRY" values, like "en_US".
// Both the language and the country must be known ISO codes.
type localeConverter struct{}

func (localeConverter) FromString(value string) (language.Tag, error) {
	parts := strings.Split(value, "_")
	if len(parts) > 2 || parts[0] == "" {
		return language.Und, ErrMalformedLocale
	}
	base, err := language.ParseBase(parts[0])
	if err != nil {
		return language.Und, err
	}
	if len(parts) == 1 {
		return language.Compose(base)
	}
	region, err := language.ParseRegion(parts[1])
	if err != nil {
		return language.Und, err
	}

	return language.Compose(base, region)
}

func (localeConverter) ToString(value language.Tag) string {
	base, _ := value.Base()
	region, confidence := value.Region()
	if confidence != language.Exact {
		return base.String()
	}

	return base.String() + "_" + region.String()
}
