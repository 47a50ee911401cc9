package diagnostic

import "tutoria_backend/internal/model"

// DefaultRecommendation is returned when no rule fires and the rule
// table carries no fallback row of its own.
const DefaultRecommendation = "Continúa con tu plan de estudio normal."

// Rule is one row of the ordered recommendation table. Each diagnostic
// supplies its own table; nothing about the concept vocabulary is
// hard-coded in the engine.
type Rule struct {
	Kind       model.RuleKind
	Concepts   []string
	MinSkipped int
	Message    string
}

// Recommend evaluates the rule table top-to-bottom against the weakness
// set and skip count. Rules are not mutually exclusive; the output is
// ordered and deduplicated. The list is never empty: a fallback message
// fills in when nothing fired.
func Recommend(rules []Rule, weaknesses []string, skippedCount int) []string {
	weak := make(map[string]bool, len(weaknesses))
	for _, w := range weaknesses {
		weak[w] = true
	}

	var out []string
	seen := make(map[string]bool)
	add := func(msg string) {
		if msg != "" && !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	}

	fallback := DefaultRecommendation
	haveFallback := false

	for _, rule := range rules {
		switch rule.Kind {
		case model.RuleWeakness:
			for _, concept := range rule.Concepts {
				if weak[concept] {
					add(rule.Message)
					break
				}
			}
		case model.RuleSkipped:
			if skippedCount > rule.MinSkipped {
				add(rule.Message)
			}
		case model.RuleFallback:
			if !haveFallback {
				fallback = rule.Message
				haveFallback = true
			}
		}
	}

	if len(out) == 0 {
		out = append(out, fallback)
	}

	return out
}
