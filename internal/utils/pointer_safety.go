package utils

func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// FirstSet returns the first pointer that is non-nil and not the zero value.
func FirstSet[T comparable](values ...*T) (T, bool) {
	var zero T
	for _, v := range values {
		if v != nil && *v != zero {
			return *v, true
		}
	}
	return zero, false
}
