package runtime

import (
	"strconv"
)

// NewArray creates an Array object with a "length" own property set to
// length, per ES5 15.4.5.2.
func NewArray(proto *Object, length uint32) *Object {
	a := NewObject(proto)
	a.SetClass(ClassArray)
	a.putOwn("length", DataDescriptor(Number(float64(length)), true, false, false))
	return a
}

// isArrayIndex reports whether name is a canonical array index string
// (ES5 15.4: an integer in [0, 2^32-1) whose string form round-trips).
func isArrayIndex(name string) (uint32, bool) {
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	if n == 0xFFFFFFFF {
		return 0, false
	}
	if strconv.FormatUint(n, 10) != name {
		return 0, false
	}
	return uint32(n), true
}

// defineArrayOwnProperty implements ES5 15.4.5.1: defining "length"
// truncates/validates against existing index properties; defining an
// index property past the current length grows it.
func (o *Object) defineArrayOwnProperty(name string, desc *PropertyDescriptor, throwOnFailure bool) Completion {
	lengthPd := o.GetOwnProperty("length")
	oldLen := uint32(lengthPd.value.NumberValue())

	if name == "length" {
		if !desc.IsDataDescriptor() {
			return o.ordinaryDefineOwnProperty("length", desc, throwOnFailure)
		}
		newLen := uint32(desc.value.NumberValue())
		if float64(newLen) != desc.value.NumberValue() {
			return ThrowRangeError("invalid array length")
		}
		if newLen < oldLen {
			// remove index properties >= newLen, highest first, per
			// 15.4.5.1 step l, stopping early (and leaving length at
			// the blocking element's index+1) if a non-configurable
			// element blocks further truncation.
			for i := oldLen; i > newLen; i-- {
				idxName := strconv.FormatUint(uint64(i-1), 10)
				if pd := o.GetOwnProperty(idxName); pd != nil {
					if !pd.configurable {
						o.putOwn("length", DataDescriptor(Number(float64(i)), lengthPd.writable, false, false))
						if throwOnFailure {
							return ThrowTypeError("cannot truncate array past non-configurable element %s", idxName)
						}
						return NormalCompletion(False)
					}
					o.deleteOwn(idxName)
				}
			}
		}
		o.putOwn("length", DataDescriptor(desc.value, desc.writable, false, false))
		o.lcacheInvalidate()
		return NormalCompletion(True)
	}

	if idx, ok := isArrayIndex(name); ok {
		if idx >= oldLen && !lengthPd.writable {
			if throwOnFailure {
				return ThrowTypeError("cannot add element %s to a non-extensible-length array", name)
			}
			return NormalCompletion(False)
		}
		res := o.ordinaryDefineOwnProperty(name, desc, throwOnFailure)
		if res.IsThrow() || (res.Value.IsBoolean() && !res.Value.BoolValue()) {
			return res
		}
		if idx >= oldLen {
			o.putOwn("length", DataDescriptor(Number(float64(idx+1)), lengthPd.writable, false, false))
		}
		return res
	}

	return o.ordinaryDefineOwnProperty(name, desc, throwOnFailure)
}
