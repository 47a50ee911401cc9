package model

// RuleKind selects how a recommendation rule is matched.
type RuleKind string

const (
	RuleWeakness RuleKind = "weakness" // fires when weaknesses intersect Concepts
	RuleSkipped  RuleKind = "skipped"  // fires when skipped count exceeds MinSkipped
	RuleFallback RuleKind = "fallback" // fires only when nothing else fired
)

// RecommendationRule is one row of the ordered rule table evaluated
// top-to-bottom at diagnostic finalization. Rules are not mutually
// exclusive. DiagnosticID 0 is the shared default table.
// swagger:model RecommendationRule
type RecommendationRule struct {
	BaseModel
	DiagnosticID uint     `gorm:"index;type:bigint unsigned" json:"diagnosticId"`
	Kind         RuleKind `gorm:"type:enum('weakness','skipped','fallback');not null" json:"kind"`
	Concepts     []string `gorm:"serializer:json;type:json" json:"concepts"`
	MinSkipped   int      `gorm:"default:0" json:"minSkipped"`
	Message      string   `gorm:"type:text;not null" json:"message"`
	Order        int      `gorm:"default:0" json:"order"`
	Enabled      bool     `gorm:"default:true" json:"enabled"`
}

func (RecommendationRule) TableName() string {
	return "recommendation_rules"
}
