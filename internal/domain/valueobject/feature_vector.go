package valueobject

import "math"

// FeatureVector holds the numeric features a student's risk is scored on.
// It is derived from raw records per scoring request and never persisted
// on its own. IncidentCount is the all-time intervention count while the
// other two features are windowed; the asymmetry is deliberate.
type FeatureVector struct {
	AttendancePct float64 // [0,100]
	GradeAvg      float64 // [0,100]
	IncidentCount int     // >= 0
}

// Values returns the features in the canonical order expected by the
// trained classifier: attendance, grade average, incident count.
func (v FeatureVector) Values() []float64 {
	return []float64{v.AttendancePct, v.GradeAvg, float64(v.IncidentCount)}
}

// RiskPrediction is the outcome of classifying a feature vector.
type RiskPrediction struct {
	Category   RiskCategory
	Confidence float64 // [0,100]
}

// Round2 rounds to two decimal places. All scores, percentages and
// confidences in this domain are reported at that precision.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
