package value

// Ref atomically bumps v's reference count and returns the same
// handle. Calling Ref on nil is a safe no-op.
func Ref(v *Value) *Value {
	if v == nil {
		return nil
	}
	v.ref.Inc()
	return v
}

// Unref atomically decrements v's reference count; at count zero the
// value is reclaimed, recursively unref-ing every handle it owns
// (array elements, object values, an instance's class back-reference,
// a class's method values). Cycles are not broken here — they leak
// under pure reference counting, same as any other cycle-unaware
// refcounting scheme.
func Unref(v *Value) {
	if v == nil {
		return
	}
	if v.ref.Dec() > 0 {
		return
	}
	reclaim(v)
}

func reclaim(v *Value) {
	switch v.Kind {
	case KindArray:
		for _, elem := range v.arr {
			Unref(elem)
		}
		v.arr = nil
	case KindObject:
		for _, k := range v.obj.Keys() {
			if elem, ok := v.obj.Get(k); ok {
				Unref(elem)
			}
		}
		v.obj = nil
	case KindInstance:
		for _, k := range v.inst.Props.Keys() {
			if elem, ok := v.inst.Props.Get(k); ok {
				Unref(elem)
			}
		}
		Unref(v.inst.Class)
		v.inst = nil
	case KindClass:
		for _, k := range v.class.Methods.Keys() {
			if fn, ok := v.class.Methods.Get(k); ok {
				Unref(fn)
			}
		}
		if v.class.Ctor != nil {
			Unref(v.class.Ctor)
		}
		if v.class.Parent != nil {
			Unref(v.class.Parent)
		}
		v.class = nil
	case KindFunction:
		v.fn = nil
	}
}

// Copy deep-copies v. Scalars get a fresh handle with the same payload;
// strings get a fresh owned buffer (Go strings are immutable, so this
// is conceptually a copy even though no bytes are physically
// duplicated); arrays/objects get new containers of Copy'd children;
// functions and classes yield a shallow share (Ref); instances get a
// new instance with per-property deep copies. Cycles during Copy are
// not detected — cyclic inputs diverge.
func Copy(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindNull:
		return NewNull()
	case KindBoolean:
		return NewBoolean(v.b)
	case KindNumber:
		return NewNumber(v.num)
	case KindString:
		return NewString(v.str)
	case KindArray:
		out := make([]*Value, len(v.arr))
		for i, elem := range v.arr {
			out[i] = Copy(elem)
		}
		return NewArray(out...)
	case KindObject:
		o := NewObject()
		for _, k := range v.obj.Keys() {
			elem, _ := v.obj.Get(k)
			ObjectSet(o, k, Copy(elem))
		}
		return o
	case KindFunction, KindClass:
		return Ref(v)
	case KindInstance:
		out := New(KindInstance)
		out.inst = &Instance{Class: Ref(v.inst.Class), Props: newOrderedMap()}
		for _, k := range v.inst.Props.Keys() {
			elem, _ := v.inst.Props.Get(k)
			out.inst.Props.Set(k, Copy(elem))
		}
		return out
	case KindError:
		return NewError(v.err.Message, v.err.Code)
	default:
		return NewNull()
	}
}

// RefCountOf exposes the live count for tests and diagnostics.
func RefCountOf(v *Value) int64 {
	if v == nil {
		return 0
	}
	return v.ref.Get()
}
