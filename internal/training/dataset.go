// Package training provides the offline tooling for the risk model:
// synthetic dataset generation, CSV persistence, stratified splitting
// and evaluation reports.
package training

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// csvHeader is the column layout shared by WriteCSV and ReadCSV.
var csvHeader = []string{"attendance_pct", "grade_avg", "incidents", "risk_label"}

// Sample is one labelled training row.
type Sample struct {
	AttendancePct float64
	GradeAvg      float64
	Incidents     int
	Label         string
}

// Features returns the row in the canonical model feature order.
func (s Sample) Features() []float64 {
	return []float64{s.AttendancePct, s.GradeAvg, float64(s.Incidents)}
}

// profile holds the sampling ranges for one risk band.
type profile struct {
	label                      string
	attendanceLo, attendanceHi float64
	gradeLo, gradeHi           float64
	incidentsLo, incidentsHi   int
}

var profiles = []profile{
	{label: "low", attendanceLo: 80, attendanceHi: 100, gradeLo: 60, gradeHi: 100, incidentsLo: 0, incidentsHi: 2},
	{label: "medium", attendanceLo: 60, attendanceHi: 80, gradeLo: 40, gradeHi: 65, incidentsLo: 1, incidentsHi: 4},
	{label: "high", attendanceLo: 30, attendanceHi: 65, gradeLo: 20, gradeHi: 50, incidentsLo: 3, incidentsHi: 8},
}

// profileWeights is the draw probability per profile, aligned with profiles.
var profileWeights = []float64{0.5, 0.3, 0.2}

// Generate produces n synthetic student rows. Each row draws a risk
// profile (50% low, 30% medium, 20% high), samples attendance, grade
// and incident counts from that profile's ranges, then perturbs the
// continuous features with gaussian noise before clamping to [0, 100]
// and rounding to two decimals. The same seed always yields the same
// dataset.
func Generate(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))

	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		p := pickProfile(rng)

		attendance := p.attendanceLo + rng.Float64()*(p.attendanceHi-p.attendanceLo)
		grade := p.gradeLo + rng.Float64()*(p.gradeHi-p.gradeLo)
		incidents := p.incidentsLo + rng.Intn(p.incidentsHi-p.incidentsLo)

		attendance = clamp(attendance+rng.NormFloat64()*3, 0, 100)
		grade = clamp(grade+rng.NormFloat64()*4, 0, 100)

		samples = append(samples, Sample{
			AttendancePct: round2(attendance),
			GradeAvg:      round2(grade),
			Incidents:     incidents,
			Label:         p.label,
		})
	}
	return samples
}

func pickProfile(rng *rand.Rand) profile {
	r := rng.Float64()
	acc := 0.0
	for i, w := range profileWeights {
		acc += w
		if r < acc {
			return profiles[i]
		}
	}
	return profiles[len(profiles)-1]
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// WriteCSV writes samples with a header row.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.AttendancePct, 'f', 2, 64),
			strconv.FormatFloat(s.GradeAvg, 'f', 2, 64),
			strconv.Itoa(s.Incidents),
			s.Label,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes samples to path, creating or truncating it.
func WriteCSVFile(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, samples); err != nil {
		return err
	}
	return f.Close()
}

// ReadCSV parses a dataset written by WriteCSV. The header row is
// required and validated.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected column %q at position %d, want %q", header[i], i, col)
		}
	}

	var samples []Sample
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		attendance, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: attendance_pct: %w", line, err)
		}
		grade, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: grade_avg: %w", line, err)
		}
		incidents, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: incidents: %w", line, err)
		}
		if row[3] == "" {
			return nil, fmt.Errorf("line %d: empty risk_label", line)
		}

		samples = append(samples, Sample{
			AttendancePct: attendance,
			GradeAvg:      grade,
			Incidents:     incidents,
			Label:         row[3],
		})
	}
	return samples, nil
}

// ReadCSVFile reads a dataset file written by WriteCSVFile.
func ReadCSVFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// FeaturesAndLabels unpacks samples into parallel feature and label
// slices for the forest trainer.
func FeaturesAndLabels(samples []Sample) ([][]float64, []string) {
	features := make([][]float64, len(samples))
	labels := make([]string, len(samples))
	for i, s := range samples {
		features[i] = s.Features()
		labels[i] = s.Label
	}
	return features, labels
}
