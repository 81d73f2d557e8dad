package datacompat

// CompareFloat is a total-order comparison over floating-point values.
// Unlike ==, it yields 0 for two NaNs and orders NaN below every other
// value; -0 and +0 compare equal. Generated equality functions use
// CompareFloat(a, b) == 0 for floating properties instead of bit or ==
// comparison.
func CompareFloat[F ~float32 | ~float64](a, b F) int {
	aNaN, bNaN := a != a, b != b
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ZeroIfNil resolves a nullable floating property to its comparison value:
// the pointee when present, canonical zero when absent.
func ZeroIfNil[F ~float32 | ~float64](p *F) F {
	if p == nil {
		return 0
	}
	return *p
}

// EqualPtr compares two nullable properties: both absent, or both present
// with equal pointees.
func EqualPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
