package diagnostic

import "sort"

// Classifier cutoffs. These are independent of the quiz pass threshold
// used when recording quiz completions; do not unify them.
const (
	// StrengthThreshold is inclusive: exactly 70% is a strength.
	StrengthThreshold = 70.0
	// WeaknessThreshold is exclusive: exactly 40% is neutral.
	WeaknessThreshold = 40.0
)

// Classify buckets each concept by its correct percentage. Concepts in
// the 40-70 band belong to neither set. With one or two questions per
// concept the percentages quantize to 0/50/100; a lone question at 50%
// landing in the neutral band is intended behavior.
func Classify(tally ConceptTally) (strengths, weaknesses []string) {
	for concept, score := range tally {
		if score.Total == 0 {
			continue
		}

		percentage := float64(score.Correct) / float64(score.Total) * 100

		switch {
		case percentage >= StrengthThreshold:
			strengths = append(strengths, concept)
		case percentage < WeaknessThreshold:
			weaknesses = append(weaknesses, concept)
		}
	}

	// Map iteration order is random; results are user-visible.
	sort.Strings(strengths)
	sort.Strings(weaknesses)
	return strengths, weaknesses
}
