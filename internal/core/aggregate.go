package core

// Tally counts how often each category occurs. Categories that never occur
// are absent from the result; empty input yields an empty map.
func Tally(categories []Category) map[Category]int {
	counts := make(map[Category]int)
	for _, c := range categories {
		counts[c]++
	}
	return counts
}

// AreaPerResident returns the residential area divided by the population.
// A population of zero or less returns a *PopulationError (ErrZeroPopulation).
func AreaPerResident(h House) (float64, error) {
	if h.Population <= 0 {
		return 0, &PopulationError{Address: h.Address, Population: h.Population}
	}
	return h.AreaResidential / float64(h.Population), nil
}

// MinAreaPerResident returns the address of the house with the smallest
// residential area per resident. Ties go to the earliest house in input order.
func MinAreaPerResident(houses []House) (string, error) {
	h, _, err := minAreaPerResident(houses)
	if err != nil {
		return "", err
	}
	return h.Address, nil
}

func minAreaPerResident(houses []House) (House, float64, error) {
	if len(houses) == 0 {
		return House{}, 0, ErrEmptyInput
	}

	best := -1
	var bestRatio float64
	for i, h := range houses {
		ratio, err := AreaPerResident(h)
		if err != nil {
			return House{}, 0, err
		}
		if best < 0 || ratio < bestRatio {
			best, bestRatio = i, ratio
		}
	}
	return houses[best], bestRatio, nil
}
