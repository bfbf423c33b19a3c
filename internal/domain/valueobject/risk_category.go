package valueobject

import "fmt"

// RiskCategory is an immutable value object representing the risk classification
// of a student.
type RiskCategory struct {
	value string
}

var (
	RiskCategoryLow    = RiskCategory{value: "low"}
	RiskCategoryMedium = RiskCategory{value: "medium"}
	RiskCategoryHigh   = RiskCategory{value: "high"}
)

// RiskCategoryFromString reconstructs a RiskCategory from its string representation.
func RiskCategoryFromString(s string) (RiskCategory, error) {
	switch s {
	case "low":
		return RiskCategoryLow, nil
	case "medium":
		return RiskCategoryMedium, nil
	case "high":
		return RiskCategoryHigh, nil
	default:
		return RiskCategory{}, fmt.Errorf("invalid risk category: %s", s)
	}
}

// RiskCategoryFromScore derives the category from a rule-based score (0-100).
// Thresholds are inclusive: 70 is high, 40 is medium.
func RiskCategoryFromScore(score float64) RiskCategory {
	switch {
	case score >= 70:
		return RiskCategoryHigh
	case score >= 40:
		return RiskCategoryMedium
	default:
		return RiskCategoryLow
	}
}

// String returns the string representation.
func (c RiskCategory) String() string {
	return c.value
}

// IsZero returns true if the RiskCategory has not been set.
func (c RiskCategory) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another RiskCategory.
func (c RiskCategory) Equal(other RiskCategory) bool {
	return c.value == other.value
}
