package utils

// Value dereferences an optional field, returning the zero value for a nil
// pointer.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v. Used to populate optional wire and update
// fields inline.
func Ptr[T any](v T) *T {
	return &v
}
