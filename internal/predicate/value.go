package predicate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Resolve walks path through nested mappings and sequences. Sequence elements
// are addressed by decimal index.
func Resolve(v any, path []string) (any, bool) {
	cur := v
	for _, key := range path {
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[key]
			if !ok {
				return nil, false
			}
			cur = next
		case map[any]any:
			next, ok := t[key]
			if !ok {
				i, err := strconv.Atoi(key)
				if err != nil {
					return nil, false
				}
				if next, ok = t[i]; !ok {
					return nil, false
				}
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}

	return cur, true
}

// Truthy applies loose truthiness: nil, false, numeric zero, NaN and the empty
// string are false. Everything else, empty collections included, is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}

	if n, ok := toNumber(v); ok {
		if n.isInt {
			return n.i != 0
		}
		return n.f != 0 && !math.IsNaN(n.f)
	}

	return true
}

type number struct {
	isInt bool
	i     int64
	f     float64
}

func toNumber(v any) (number, bool) {
	switch t := v.(type) {
	case int:
		return number{isInt: true, i: int64(t), f: float64(t)}, true
	case int8:
		return number{isInt: true, i: int64(t), f: float64(t)}, true
	case int16:
		return number{isInt: true, i: int64(t), f: float64(t)}, true
	case int32:
		return number{isInt: true, i: int64(t), f: float64(t)}, true
	case int64:
		return number{isInt: true, i: t, f: float64(t)}, true
	case uint:
		return fromUint(uint64(t)), true
	case uint8:
		return fromUint(uint64(t)), true
	case uint16:
		return fromUint(uint64(t)), true
	case uint32:
		return fromUint(uint64(t)), true
	case uint64:
		return fromUint(t), true
	case float32:
		return number{f: float64(t)}, true
	case float64:
		return number{f: t}, true
	default:
		return number{}, false
	}
}

func fromUint(u uint64) number {
	if u <= math.MaxInt64 {
		return number{isInt: true, i: int64(u), f: float64(u)}
	}
	return number{f: float64(u)}
}

// compare orders a against b. ok is false when the two are not both numbers
// or both strings, or when either number is NaN.
func compare(a, b any) (c int, ok bool) {
	if as, isStr := a.(string); isStr {
		bs, isStr := b.(string)
		if !isStr {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}

	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if !aok || !bok {
		return 0, false
	}

	if an.isInt && bn.isInt {
		switch {
		case an.i < bn.i:
			return -1, true
		case an.i > bn.i:
			return 1, true
		default:
			return 0, true
		}
	}

	if math.IsNaN(an.f) || math.IsNaN(bn.f) {
		return 0, false
	}

	switch {
	case an.f < bn.f:
		return -1, true
	case an.f > bn.f:
		return 1, true
	default:
		return 0, true
	}
}

func equal(a, b any) bool {
	if c, ok := compare(a, b); ok {
		return c == 0
	}

	switch at := a.(type) {
	case nil:
		return b == nil
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	default:
		return false
	}
}

func stringForm(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}
