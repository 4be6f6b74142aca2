package config

// Select returns override unless it is the zero value, in which case base wins.
// The zero value stands for "not supplied": an absent field, an empty string or
// a zero count never replaces an outer layer's value.
func Select[T comparable](override, base T) T {
	var zero T
	if override == zero {
		return base
	}
	return override
}
