package diagnostic

import (
	"testing"

	"tutoria_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func ruleTable() []Rule {
	return []Rule{
		{Kind: model.RuleWeakness, Concepts: []string{"Álgebra", "Ecuaciones"}, Message: "Practica ecuaciones."},
		{Kind: model.RuleWeakness, Concepts: []string{"Geometría"}, Message: "Repasa geometría."},
		{Kind: model.RuleSkipped, MinSkipped: 2, Message: "Intenta responder más preguntas."},
		{Kind: model.RuleFallback, Message: "Sigue con tu plan."},
	}
}

func TestRecommendWeaknessIntersection(t *testing.T) {
	out := Recommend(ruleTable(), []string{"Geometría"}, 0)
	assert.Equal(t, []string{"Repasa geometría."}, out)
}

func TestRecommendMultipleRulesFireInOrder(t *testing.T) {
	out := Recommend(ruleTable(), []string{"Ecuaciones", "Geometría"}, 0)
	assert.Equal(t, []string{"Practica ecuaciones.", "Repasa geometría."}, out)
}

func TestRecommendSkippedRuleStrictlyAbove(t *testing.T) {
	// MinSkipped is an exclusive bound: exactly 2 does not fire.
	out := Recommend(ruleTable(), nil, 2)
	assert.Equal(t, []string{"Sigue con tu plan."}, out)

	out = Recommend(ruleTable(), nil, 3)
	assert.Equal(t, []string{"Intenta responder más preguntas."}, out)
}

func TestRecommendDeduplicatesMessages(t *testing.T) {
	rules := []Rule{
		{Kind: model.RuleWeakness, Concepts: []string{"Álgebra"}, Message: "Repasa lo básico."},
		{Kind: model.RuleWeakness, Concepts: []string{"Geometría"}, Message: "Repasa lo básico."},
	}
	out := Recommend(rules, []string{"Álgebra", "Geometría"}, 0)
	assert.Equal(t, []string{"Repasa lo básico."}, out)
}

func TestRecommendNeverEmpty(t *testing.T) {
	// No rules at all: the built-in default fills in.
	out := Recommend(nil, nil, 0)
	assert.Equal(t, []string{DefaultRecommendation}, out)

	// A fallback row overrides the built-in default.
	out = Recommend(ruleTable(), nil, 0)
	assert.Equal(t, []string{"Sigue con tu plan."}, out)
}

func TestRecommendFallbackSuppressedWhenAnythingFired(t *testing.T) {
	out := Recommend(ruleTable(), []string{"Geometría"}, 5)
	assert.Equal(t, []string{"Repasa geometría.", "Intenta responder más preguntas."}, out)
	assert.NotContains(t, out, "Sigue con tu plan.")
}
