// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/actforgood/tagconf"
)

// color is an Enum used in tests.
type color int

const (
	red color = iota + 1
	green
	blue
)

func (c color) String() string {
	switch c {
	case red:
		return "Red"
	case green:
		return "Green"
	case blue:
		return "Blue"
	}

	return "color(" + strconv.Itoa(int(c)) + ")"
}

func (color) EnumConstants() []fmt.Stringer {
	return []fmt.Stringer{red, green, blue}
}

func TestConverterRegistry_builtinConverters(t *testing.T) {
	t.Parallel()

	t.Run("success - valid values are parsed", testBuiltinConvertersParseValidValues)
	t.Run("error - malformed values", testBuiltinConvertersFailOnMalformedValues)
	t.Run("success - round trip", testBuiltinConvertersRoundTrip)
	t.Run("success - locale", testBuiltinLocaleConverter)
	t.Run("error - ToString with wrong type", testBuiltinConverterToStringWithWrongType)
}

func testBuiltinConvertersParseValidValues(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name          string
		typ           reflect.Type
		value         string
		expectedValue any
	}{
		{"bool true", reflect.TypeFor[bool](), "true", true},
		{"bool TRUE", reflect.TypeFor[bool](), "TRUE", true},
		{"bool True", reflect.TypeFor[bool](), "True", true},
		{"bool false", reflect.TypeFor[bool](), "false", false},
		{"bool FALSE", reflect.TypeFor[bool](), "FALSE", false},
		{"int8 min", reflect.TypeFor[int8](), "-128", int8(math.MinInt8)},
		{"int8 max", reflect.TypeFor[int8](), "127", int8(math.MaxInt8)},
		{"int16 min", reflect.TypeFor[int16](), "-32768", int16(math.MinInt16)},
		{"int32 min", reflect.TypeFor[int32](), "-2147483648", int32(math.MinInt32)},
		{"int64 min", reflect.TypeFor[int64](), "-9223372036854775808", int64(math.MinInt64)},
		{"int64 plus sign", reflect.TypeFor[int64](), "+7", int64(7)},
		{"int", reflect.TypeFor[int](), "2024", 2024},
		{"uint8 max", reflect.TypeFor[uint8](), "255", uint8(math.MaxUint8)},
		{"uint64 max", reflect.TypeFor[uint64](), "18446744073709551615", uint64(math.MaxUint64)},
		{"float32 min with suffix", reflect.TypeFor[float32](), "1.4E-45F", float32(math.SmallestNonzeroFloat32)},
		{"float32 overflow", reflect.TypeFor[float32](), "1e39", float32(math.Inf(1))},
		{"float64 min", reflect.TypeFor[float64](), "4.9E-324", math.SmallestNonzeroFloat64},
		{"float64 with suffix", reflect.TypeFor[float64](), "1.5d", 1.5},
		{"float64 exponent", reflect.TypeFor[float64](), "-2.5e3", -2500.0},
		{"float64 infinity", reflect.TypeFor[float64](), "Infinity", math.Inf(1)},
		{"string", reflect.TypeFor[string](), " any thing ", " any thing "},
		{"empty string", reflect.TypeFor[string](), "", ""},
		{"duration", reflect.TypeFor[time.Duration](), "1m30s", 90 * time.Second},
		{"enum", reflect.TypeFor[color](), "Green", green},
	}

	subject := tagconf.NewConverterRegistry()

	for _, testData := range tests {
		test := testData // capture range variable
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			// arrange
			conv, err := subject.Resolve(test.typ)
			requireNil(t, err)

			// act
			result, err := conv.FromString(test.value)

			// assert
			assertNil(t, err)
			assertEqual(t, test.expectedValue, result)
		})
	}
}

func testBuiltinConvertersFailOnMalformedValues(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name  string
		typ   reflect.Type
		value string
	}{
		{"bool yes", reflect.TypeFor[bool](), "yes"},
		{"bool 1", reflect.TypeFor[bool](), "1"},
		{"bool empty", reflect.TypeFor[bool](), ""},
		{"int8 overflow", reflect.TypeFor[int8](), "128"},
		{"int8 underflow", reflect.TypeFor[int8](), "-129"},
		{"int8 not a number", reflect.TypeFor[int8](), "this is not a number"},
		{"int16 overflow", reflect.TypeFor[int16](), "32768"},
		{"int32 overflow", reflect.TypeFor[int32](), "2147483648"},
		{"int32 decimal", reflect.TypeFor[int32](), "1.5"},
		{"int32 hexadecimal", reflect.TypeFor[int32](), "0x10"},
		{"int32 with spaces", reflect.TypeFor[int32](), " 42 "},
		{"bool with spaces", reflect.TypeFor[bool](), " true"},
		{"float64 with spaces", reflect.TypeFor[float64](), "1.5 "},
		{"duration with spaces", reflect.TypeFor[time.Duration](), " 3s"},
		{"locale with spaces", reflect.TypeFor[language.Tag](), "en_US "},
		{"int64 overflow", reflect.TypeFor[int64](), "9223372036854775808"},
		{"int64 empty", reflect.TypeFor[int64](), ""},
		{"uint8 negative", reflect.TypeFor[uint8](), "-1"},
		{"uint8 overflow", reflect.TypeFor[uint8](), "256"},
		{"float32 not a number", reflect.TypeFor[float32](), "this is not a number"},
		{"float32 malformed exponent", reflect.TypeFor[float32](), "1e"},
		{"float32 only suffix", reflect.TypeFor[float32](), "f"},
		{"float64 malformed exponent", reflect.TypeFor[float64](), "1e+"},
		{"float64 double dot", reflect.TypeFor[float64](), "1.0.0"},
		{"float64 empty", reflect.TypeFor[float64](), ""},
		{"duration", reflect.TypeFor[time.Duration](), "5 parsecs"},
		{"locale unknown country", reflect.TypeFor[language.Tag](), "no_PO"},
		{"locale dash separated", reflect.TypeFor[language.Tag](), "en-US"},
		{"locale too many parts", reflect.TypeFor[language.Tag](), "en_US_POSIX"},
		{"locale empty", reflect.TypeFor[language.Tag](), ""},
		{"locale missing language", reflect.TypeFor[language.Tag](), "_US"},
		{"enum wrong case", reflect.TypeFor[color](), "green"},
		{"enum unknown", reflect.TypeFor[color](), "Purple"},
	}

	subject := tagconf.NewConverterRegistry()

	for _, testData := range tests {
		test := testData // capture range variable
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			// arrange
			conv, err := subject.Resolve(test.typ)
			requireNil(t, err)

			// act
			result, err := conv.FromString(test.value)

			// assert
			assertNil(t, result)
			var convErr tagconf.ConversionError
			if assertTrue(t, errors.As(err, &convErr)) {
				assertEqual(t, test.value, convErr.Value())
				assertEqual(t, test.typ, convErr.Type())
				assertEqual(t, "", convErr.Key())
			}
		})
	}
}

func testBuiltinConvertersRoundTrip(t *testing.T) {
	t.Parallel()

	// arrange
	values := []any{
		true, false,
		"", "some value", "ünïcode",
		int8(math.MinInt8), int8(0), int8(math.MaxInt8),
		int16(math.MinInt16), int16(math.MaxInt16),
		int32(math.MinInt32), int32(math.MaxInt32),
		int64(math.MinInt64), int64(math.MaxInt64),
		math.MinInt, 0, math.MaxInt,
		uint(math.MaxUint), uint8(math.MaxUint8), uint16(math.MaxUint16),
		uint32(math.MaxUint32), uint64(math.MaxUint64),
		float32(math.SmallestNonzeroFloat32), float32(math.MaxFloat32), float32(-1.25), float32(math.Inf(-1)),
		math.SmallestNonzeroFloat64, math.MaxFloat64, 3.141592653589793, math.Inf(1),
		time.Duration(0), 1500 * time.Millisecond, -3 * time.Hour,
		red, green, blue,
	}
	subject := tagconf.NewConverterRegistry()

	for _, value := range values {
		conv, err := subject.Resolve(reflect.TypeOf(value))
		requireNil(t, err)

		// act
		rawValue, errToString := conv.ToString(value)
		result, errFromString := conv.FromString(rawValue)

		// assert
		assertNil(t, errToString)
		assertNil(t, errFromString)
		assertEqual(t, value, result)
	}
}

func testBuiltinLocaleConverter(t *testing.T) {
	t.Parallel()

	// arrange
	subject, err := tagconf.NewConverterRegistry().Resolve(reflect.TypeFor[language.Tag]())
	requireNil(t, err)

	// act
	locale, errFromString := subject.FromString("en_US")
	langOnly, errLangOnly := subject.FromString("no")

	// assert
	if assertNil(t, errFromString) {
		tag := locale.(language.Tag)
		assertEqual(t, "en-US", tag.String())
		rawValue, err := subject.ToString(tag)
		assertNil(t, err)
		assertEqual(t, "en_US", rawValue)
	}
	if assertNil(t, errLangOnly) {
		tag := langOnly.(language.Tag)
		assertEqual(t, "no", tag.String())
		rawValue, err := subject.ToString(tag)
		assertNil(t, err)
		assertEqual(t, "no", rawValue)
	}
}

func testBuiltinConverterToStringWithWrongType(t *testing.T) {
	t.Parallel()

	// arrange
	registry := tagconf.NewConverterRegistry()
	intConv, err := registry.Resolve(reflect.TypeFor[int32]())
	requireNil(t, err)
	enumConv, err := registry.Resolve(reflect.TypeFor[color]())
	requireNil(t, err)

	// act
	result1, err1 := intConv.ToString(int64(1))
	result2, err2 := enumConv.ToString(1)

	// assert
	assertEqual(t, "", result1)
	assertNotNil(t, err1)
	assertEqual(t, "", result2)
	assertNotNil(t, err2)
}

func TestConverterRegistry_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("error - unsupported type", testConverterRegistryResolveUnsupportedType)
	t.Run("error - nil type", testConverterRegistryResolveNilType)
	t.Run("error - pointer to enum is not an enum", testConverterRegistryResolvePointerToEnum)
	t.Run("success - registered converter overwrites previous one", testConverterRegistryRegisterOverwrites)
	t.Run("success - registered converter wins over enum heuristic", testConverterRegistryRegisteredEnum)
	t.Run("success - custom errors are wrapped in ConversionError", testConverterRegistryWrapsCustomErrors)
	t.Run("success - concurrent register and resolve", testConverterRegistryConcurrency)
}

func testConverterRegistryResolveUnsupportedType(t *testing.T) {
	t.Parallel()

	// arrange
	type unsupported struct{ field string }
	var (
		subject = tagconf.NewConverterRegistry()
		typ     = reflect.TypeFor[unsupported]()
	)

	// act
	conv, err := subject.Resolve(typ)

	// assert
	assertNil(t, conv)
	var typeErr tagconf.UnsupportedTypeError
	if assertTrue(t, errors.As(err, &typeErr)) {
		assertEqual(t, typ, typeErr.Type())
	}
}

func testConverterRegistryResolveNilType(t *testing.T) {
	t.Parallel()

	// arrange
	subject := tagconf.NewConverterRegistry()

	// act
	conv, err := subject.Resolve(nil)

	// assert
	assertNil(t, conv)
	var typeErr tagconf.UnsupportedTypeError
	assertTrue(t, errors.As(err, &typeErr))
}

func testConverterRegistryResolvePointerToEnum(t *testing.T) {
	t.Parallel()

	// arrange
	subject := tagconf.NewConverterRegistry()

	// act
	conv, err := subject.Resolve(reflect.TypeFor[*color]())

	// assert
	assertNil(t, conv)
	var typeErr tagconf.UnsupportedTypeError
	assertTrue(t, errors.As(err, &typeErr))
}

func testConverterRegistryRegisterOverwrites(t *testing.T) {
	t.Parallel()

	// arrange
	subject := tagconf.NewConverterRegistry()
	tagconf.RegisterConverter(subject, tagconf.ConverterFunc(
		func(string) (int32, error) { return 42, nil },
		func(int32) string { return "42" },
	))

	// act
	conv, err := subject.Resolve(reflect.TypeFor[int32]())

	// assert
	requireNil(t, err)
	result, err := conv.FromString("1")
	assertNil(t, err)
	assertEqual(t, int32(42), result)

	// a different registry is not affected.
	conv, err = tagconf.NewConverterRegistry().Resolve(reflect.TypeFor[int32]())
	requireNil(t, err)
	result, err = conv.FromString("1")
	assertNil(t, err)
	assertEqual(t, int32(1), result)
}

func testConverterRegistryRegisteredEnum(t *testing.T) {
	t.Parallel()

	// arrange
	subject := tagconf.NewConverterRegistry()
	tagconf.RegisterConverter(subject, tagconf.ConverterFunc(
		func(value string) (color, error) {
			if value == "r" {
				return red, nil
			}

			return 0, errors.New("only r is supported")
		},
		func(c color) string { return c.String() },
	))

	// act
	conv, err := subject.Resolve(reflect.TypeFor[color]())

	// assert
	requireNil(t, err)
	result, err := conv.FromString("r")
	assertNil(t, err)
	assertEqual(t, red, result)
	_, err = conv.FromString("Red")
	assertNotNil(t, err)
}

func testConverterRegistryWrapsCustomErrors(t *testing.T) {
	t.Parallel()

	// arrange
	type custom struct{ data string }
	var (
		expectedErr = errors.New("intentionally triggered test error")
		subject     = tagconf.NewConverterRegistry()
	)
	tagconf.RegisterConverter(subject, tagconf.ConverterFunc(
		func(string) (custom, error) { return custom{}, expectedErr },
		func(c custom) string { return c.data },
	))
	conv, err := subject.Resolve(reflect.TypeFor[custom]())
	requireNil(t, err)

	// act
	result, err := conv.FromString("x")

	// assert
	assertNil(t, result)
	assertTrue(t, errors.Is(err, expectedErr))
	var convErr tagconf.ConversionError
	assertTrue(t, errors.As(err, &convErr))
}

func testConverterRegistryConcurrency(t *testing.T) {
	t.Parallel()

	// arrange
	var (
		subject    = tagconf.NewConverterRegistry()
		wg         sync.WaitGroup
		goroutines = 20
		typ        = reflect.TypeFor[int16]()
	)

	// act
	for i := 0; i < goroutines; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tagconf.RegisterConverter(subject, tagconf.ConverterFunc(
				func(string) (int16, error) { return 7, nil },
				func(v int16) string { return strconv.Itoa(int(v)) },
			))
		}()
		go func() {
			defer wg.Done()
			conv, err := subject.Resolve(typ)
			assertNil(t, err)
			assertNotNil(t, conv)
		}()
	}
	wg.Wait()

	// assert
	conv, err := subject.Resolve(typ)
	requireNil(t, err)
	result, err := conv.FromString("1")
	assertNil(t, err)
	assertEqual(t, int16(7), result)
}

func BenchmarkConverterRegistry_Resolve(b *testing.B) {
	var (
		subject = tagconf.NewConverterRegistry()
		typ     = reflect.TypeFor[int64]()
	)

	b.ReportAllocs()
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		conv, err := subject.Resolve(typ)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := conv.FromString("1234567890"); err != nil {
			b.Fatal(err)
		}
	}
}
