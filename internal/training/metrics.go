package training

import (
	"fmt"
	"sort"
	"strings"
)

// ClassMetrics holds per-class evaluation figures.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is the evaluation summary for a set of predictions.
type Report struct {
	Accuracy float64
	Classes  []string
	PerClass map[string]ClassMetrics
	Total    int
}

// Evaluate compares predicted labels against the truth and computes
// accuracy plus per-class precision, recall and F1.
func Evaluate(truth, predicted []string) (Report, error) {
	if len(truth) != len(predicted) {
		return Report{}, fmt.Errorf("%d truth labels but %d predictions", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return Report{}, fmt.Errorf("no labels to evaluate")
	}

	classSet := make(map[string]struct{})
	for _, l := range truth {
		classSet[l] = struct{}{}
	}
	for _, l := range predicted {
		classSet[l] = struct{}{}
	}
	classes := make([]string, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	truePos := make(map[string]int)
	falsePos := make(map[string]int)
	falseNeg := make(map[string]int)
	support := make(map[string]int)

	correct := 0
	for i, want := range truth {
		got := predicted[i]
		support[want]++
		if got == want {
			correct++
			truePos[want]++
		} else {
			falsePos[got]++
			falseNeg[want]++
		}
	}

	perClass := make(map[string]ClassMetrics, len(classes))
	for _, c := range classes {
		precision := ratio(truePos[c], truePos[c]+falsePos[c])
		recall := ratio(truePos[c], truePos[c]+falseNeg[c])
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		perClass[c] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   support[c],
		}
	}

	return Report{
		Accuracy: float64(correct) / float64(len(truth)),
		Classes:  classes,
		PerClass: perClass,
		Total:    len(truth),
	}, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// String renders the report as a fixed-width table.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "accuracy: %.1f%% (%d samples)\n\n", r.Accuracy*100, r.Total)
	fmt.Fprintf(&b, "%-10s %9s %9s %9s %9s\n", "class", "precision", "recall", "f1", "support")
	for _, c := range r.Classes {
		m := r.PerClass[c]
		fmt.Fprintf(&b, "%-10s %9.2f %9.2f %9.2f %9d\n", c, m.Precision, m.Recall, m.F1, m.Support)
	}
	return b.String()
}
