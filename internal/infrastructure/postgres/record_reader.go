package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

// RecordReader implements port.StudentRecordReader over the raw student
// record tables. It also persists attendance logs, satisfying
// port.AttendanceRepository.
type RecordReader struct {
	pool *pgxpool.Pool
}

// NewRecordReader creates a new PostgreSQL-backed record reader.
func NewRecordReader(pool *pgxpool.Pool) *RecordReader {
	return &RecordReader{pool: pool}
}

// AttendanceRows returns the student's attendance rows on or after since.
func (r *RecordReader) AttendanceRows(ctx context.Context, studentID int64, since time.Time) ([]port.AttendanceRow, error) {
	query := `
		SELECT status, date
		FROM attendance_logs
		WHERE student_id = $1 AND date >= $2
	`
	rows, err := r.pool.Query(ctx, query, studentID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance rows: %w", err)
	}
	defer rows.Close()

	var result []port.AttendanceRow
	for rows.Next() {
		var row port.AttendanceRow
		if err := rows.Scan(&row.Status, &row.Date); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}
	return result, nil
}

// GradeScores returns the student's grade scores on or after since.
func (r *RecordReader) GradeScores(ctx context.Context, studentID int64, since time.Time) ([]float64, error) {
	query := `
		SELECT score
		FROM grade_records
		WHERE student_id = $1 AND date >= $2
	`
	rows, err := r.pool.Query(ctx, query, studentID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query grade scores: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("failed to scan grade score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grade scores: %w", err)
	}
	return scores, nil
}

// InterventionCount returns the all-time intervention count for the student.
func (r *RecordReader) InterventionCount(ctx context.Context, studentID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM interventions WHERE student_id = $1`
	if err := r.pool.QueryRow(ctx, query, studentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count interventions: %w", err)
	}
	return count, nil
}

// Save inserts a new attendance log row.
func (r *RecordReader) Save(ctx context.Context, log *model.AttendanceLog) error {
	query := `
		INSERT INTO attendance_logs (id, student_id, marked_by, date, status, class_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		log.ID(),
		log.StudentID(),
		log.MarkedBy(),
		log.Date(),
		string(log.Status()),
		log.ClassName(),
		log.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save attendance log: %w", err)
	}
	return nil
}
