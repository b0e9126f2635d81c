package ext

// DefaultValue returns fallback when value is the zero value, so optional
// flags and config fields can be read in one step.
func DefaultValue[T comparable](value T, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}
