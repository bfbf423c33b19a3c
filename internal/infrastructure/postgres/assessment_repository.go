package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
// The risk_assessments table is append-only.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save inserts a new assessment row.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.RiskAssessment) error {
	query := `
		INSERT INTO risk_assessments (
			id, student_id, score, category,
			attendance_pct, grade_avg, incident_count,
			used_fallback, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	features := assessment.Features()
	_, err := r.pool.Exec(ctx, query,
		assessment.ID(),
		assessment.StudentID(),
		assessment.Score(),
		assessment.Category().String(),
		features.AttendancePct,
		features.GradeAvg,
		features.IncidentCount,
		assessment.UsedFallback(),
		assessment.ComputedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// FindByStudent returns the student's most recent assessments, newest first.
func (r *AssessmentRepository) FindByStudent(ctx context.Context, studentID int64, limit int) ([]*model.RiskAssessment, error) {
	query := `
		SELECT id, student_id, score, category,
			attendance_pct, grade_avg, incident_count,
			used_fallback, computed_at
		FROM risk_assessments
		WHERE student_id = $1
		ORDER BY computed_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	return scanAssessments(rows)
}

// FindHighRisk returns the most recent high-category assessments, newest first.
func (r *AssessmentRepository) FindHighRisk(ctx context.Context, limit int) ([]*model.RiskAssessment, error) {
	query := `
		SELECT id, student_id, score, category,
			attendance_pct, grade_avg, incident_count,
			used_fallback, computed_at
		FROM risk_assessments
		WHERE category = 'high'
		ORDER BY computed_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query high risk assessments: %w", err)
	}
	defer rows.Close()

	return scanAssessments(rows)
}

func scanAssessments(rows pgx.Rows) ([]*model.RiskAssessment, error) {
	var assessments []*model.RiskAssessment
	for rows.Next() {
		assessment, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return assessments, nil
}

func scanAssessment(row pgx.Row) (*model.RiskAssessment, error) {
	var (
		id           uuid.UUID
		studentID    int64
		score        float64
		categoryStr  string
		features     valueobject.FeatureVector
		usedFallback bool
		computedAt   time.Time
	)
	err := row.Scan(
		&id,
		&studentID,
		&score,
		&categoryStr,
		&features.AttendancePct,
		&features.GradeAvg,
		&features.IncidentCount,
		&usedFallback,
		&computedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	category, err := valueobject.RiskCategoryFromString(categoryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}
	return model.ReconstructRiskAssessment(id, studentID, score, category, features, usedFallback, computedAt), nil
}
