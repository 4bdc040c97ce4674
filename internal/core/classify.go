package core

import "fmt"

// Classify maps a floor count to its height category.
//
//	1..5   Low-rise
//	6..16  Mid-rise
//	17+    High-rise
//
// A floor count of zero or less returns ErrNotPositive.
func Classify(floorCount int) (Category, error) {
	if floorCount <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrNotPositive, floorCount)
	}

	switch {
	case floorCount <= lowRiseMaxFloors:
		return LowRise, nil
	case floorCount <= midRiseMaxFloors:
		return MidRise, nil
	default:
		return HighRise, nil
	}
}

// ClassifyValue classifies a dynamically typed floor count, e.g. a value
// decoded from JSON into an interface. Only Go integer types are accepted:
// floats return ErrNotInteger even when integer-valued, as do strings and nil.
func ClassifyValue(v any) (Category, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		n = int64(min(uint64(x), 1<<62))
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		n = int64(min(x, 1<<62))
	default:
		return 0, fmt.Errorf("%w, got %T", ErrNotInteger, v)
	}

	if n <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrNotPositive, n)
	}
	// Anything past the High-rise threshold classifies the same, so clamp
	// before narrowing to int on 32-bit platforms.
	if n > midRiseMaxFloors+1 {
		n = midRiseMaxFloors + 1
	}
	return Classify(int(n))
}

// ClassifyAll classifies every house in input order. The first invalid floor
// count stops the run and its error is returned as is.
func ClassifyAll(houses []House) ([]Category, error) {
	categories := make([]Category, len(houses))
	for i, h := range houses {
		c, err := Classify(h.FloorCount)
		if err != nil {
			return nil, err
		}
		categories[i] = c
	}
	return categories, nil
}
