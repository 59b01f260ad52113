package sieve

import (
	"encoding"
	"reflect"
	"strconv"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// parserFor returns the string parser for T. The supported set is fixed
// at composition time: strings, bools, the integer and float kinds, and
// any type whose pointer implements encoding.TextUnmarshaler. An
// unsupported T panics when the leaf is constructed, not per request.
func parserFor[T any]() func(string) (T, error) {
	switch any((*T)(nil)).(type) {
	case *string:
		return func(s string) (T, error) {
			return any(s).(T), nil
		}
	case *bool:
		return func(s string) (T, error) {
			v, err := strconv.ParseBool(s)
			return any(v).(T), err
		}
	case *int:
		return func(s string) (T, error) {
			v, err := strconv.ParseInt(s, 10, strconv.IntSize)
			return any(int(v)).(T), err
		}
	case *int8:
		return func(s string) (T, error) {
			v, err := strconv.ParseInt(s, 10, 8)
			return any(int8(v)).(T), err
		}
	case *int16:
		return func(s string) (T, error) {
			v, err := strconv.ParseInt(s, 10, 16)
			return any(int16(v)).(T), err
		}
	case *int32:
		return func(s string) (T, error) {
			v, err := strconv.ParseInt(s, 10, 32)
			return any(int32(v)).(T), err
		}
	case *int64:
		return func(s string) (T, error) {
			v, err := strconv.ParseInt(s, 10, 64)
			return any(v).(T), err
		}
	case *uint:
		return func(s string) (T, error) {
			v, err := strconv.ParseUint(s, 10, strconv.IntSize)
			return any(uint(v)).(T), err
		}
	case *uint8:
		return func(s string) (T, error) {
			v, err := strconv.ParseUint(s, 10, 8)
			return any(uint8(v)).(T), err
		}
	case *uint16:
		return func(s string) (T, error) {
			v, err := strconv.ParseUint(s, 10, 16)
			return any(uint16(v)).(T), err
		}
	case *uint32:
		return func(s string) (T, error) {
			v, err := strconv.ParseUint(s, 10, 32)
			return any(uint32(v)).(T), err
		}
	case *uint64:
		return func(s string) (T, error) {
			v, err := strconv.ParseUint(s, 10, 64)
			return any(v).(T), err
		}
	case *float32:
		return func(s string) (T, error) {
			v, err := strconv.ParseFloat(s, 32)
			return any(float32(v)).(T), err
		}
	case *float64:
		return func(s string) (T, error) {
			v, err := strconv.ParseFloat(s, 64)
			return any(v).(T), err
		}
	}
	if reflect.PointerTo(reflect.TypeFor[T]()).Implements(textUnmarshalerType) {
		return func(s string) (T, error) {
			var v T
			if err := any(&v).(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				var zero T
				return zero, err
			}
			return v, nil
		}
	}
	panicf("no parser for %s: supported types are strings, bools, integers, floats, and encoding.TextUnmarshaler implementations", reflect.TypeFor[T]())
	return nil
}
