package value

import "fmt"

// Equals implements structural equality: same pointer is always equal;
// different tags are never equal; scalars compare by payload; strings
// byte-for-byte; arrays element-wise at equal length; objects as a set
// of pairs; functions/classes/instances by handle identity. Cycles are
// tolerated but not resolved — a cyclic input may cause this to
// diverge.
func Equals(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equals(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			av, _ := a.obj.Get(k)
			bv, ok := b.obj.Get(k)
			if !ok || !Equals(av, bv) {
				return false
			}
		}
		return true
	case KindFunction, KindClass, KindInstance:
		return a == b
	case KindError:
		return a.err.Code == b.err.Code && a.err.Message == b.err.Message
	default:
		return false
	}
}

// Hash produces a value consistent with Equals: Equals(a,b) implies
// Hash(a) == Hash(b). The converse need not hold, so this is
// intentionally coarse rather than cryptographically distinguishing.
func Hash(v *Value) uint64 {
	if v == nil {
		return 0
	}
	const prime = 1099511628211
	h := uint64(14695981039346656037) ^ uint64(v.Kind)

	mix := func(x uint64) {
		h ^= x
		h *= prime
	}

	switch v.Kind {
	case KindNull:
	case KindBoolean:
		if v.b {
			mix(1)
		}
	case KindNumber:
		mix(hashFloat(v.num))
	case KindString:
		mix(hashString(v.str))
	case KindArray:
		for _, elem := range v.arr {
			mix(Hash(elem))
		}
	case KindObject:
		// set-of-pairs equality requires an order-independent hash.
		var acc uint64
		for _, k := range v.obj.Keys() {
			elem, _ := v.obj.Get(k)
			acc += hashString(k) ^ Hash(elem)
		}
		mix(acc)
	case KindError:
		mix(hashString(v.err.Code))
		mix(hashString(v.err.Message))
	case KindFunction, KindClass, KindInstance:
		mix(hashString(fmt.Sprintf("%p", v)))
	}
	return h
}

func hashString(s string) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

func hashFloat(f float64) uint64 {
	return hashString(formatNumber(f))
}
