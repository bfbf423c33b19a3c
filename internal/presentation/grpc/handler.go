package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/usecase"
)

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	scoreStudent   *usecase.ScoreStudent
	getStudentRisk *usecase.GetStudentRisk
	listHighRisk   *usecase.ListHighRisk
	logger         *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(
	scoreStudent *usecase.ScoreStudent,
	getStudentRisk *usecase.GetStudentRisk,
	listHighRisk *usecase.ListHighRisk,
	logger *slog.Logger,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		scoreStudent:   scoreStudent,
		getStudentRisk: getStudentRisk,
		listHighRisk:   listHighRisk,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// ScoreStudentRequest represents the proto ScoreStudentRequest message.
type ScoreStudentRequest struct {
	StudentID int64 `json:"student_id"`
}

// RiskAssessmentMsg represents the proto RiskAssessment message.
type RiskAssessmentMsg struct {
	ID            string  `json:"id"`
	StudentID     int64   `json:"student_id"`
	Score         float64 `json:"score"`
	Category      string  `json:"category"`
	AttendancePct float64 `json:"attendance_pct"`
	GradeAvg      float64 `json:"grade_avg"`
	IncidentCount int32   `json:"incident_count"`
	UsedFallback  bool    `json:"used_fallback"`
	ComputedAt    string  `json:"computed_at"`
}

// ScoreStudentResponse represents the proto ScoreStudentResponse message.
type ScoreStudentResponse struct {
	Assessment *RiskAssessmentMsg `json:"assessment"`
}

// GetStudentRiskRequest represents the proto GetStudentRiskRequest message.
type GetStudentRiskRequest struct {
	StudentID int64 `json:"student_id"`
	Limit     int32 `json:"limit"`
}

// GetStudentRiskResponse represents the proto GetStudentRiskResponse message.
type GetStudentRiskResponse struct {
	Assessments []*RiskAssessmentMsg `json:"assessments"`
}

// ListHighRiskRequest represents the proto ListHighRiskRequest message.
type ListHighRiskRequest struct {
	Limit int32 `json:"limit"`
}

// ListHighRiskResponse represents the proto ListHighRiskResponse message.
type ListHighRiskResponse struct {
	Assessments []*RiskAssessmentMsg `json:"assessments"`
}

// ScoreStudent runs the scoring pipeline for one student.
func (h *RiskServiceHandler) ScoreStudent(ctx context.Context, req *ScoreStudentRequest) (*ScoreStudentResponse, error) {
	if req == nil || req.StudentID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "student_id is required")
	}

	h.logger.Info("scoring student", slog.Int64("student_id", req.StudentID))

	result, err := h.scoreStudent.Execute(ctx, dto.ScoreStudentRequest{StudentID: req.StudentID})
	if err != nil {
		h.logger.Error("failed to score student",
			slog.Int64("student_id", req.StudentID),
			slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &ScoreStudentResponse{Assessment: assessmentMsg(result)}, nil
}

// GetStudentRisk returns a student's recent assessments.
func (h *RiskServiceHandler) GetStudentRisk(ctx context.Context, req *GetStudentRiskRequest) (*GetStudentRiskResponse, error) {
	if req == nil || req.StudentID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "student_id is required")
	}

	results, err := h.getStudentRisk.Execute(ctx, dto.GetStudentRiskRequest{
		StudentID: req.StudentID,
		Limit:     int(req.Limit),
	})
	if err != nil {
		h.logger.Error("failed to load student risk",
			slog.Int64("student_id", req.StudentID),
			slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetStudentRiskResponse{Assessments: assessmentMsgs(results)}, nil
}

// ListHighRisk returns the most recent high-category assessments.
func (h *RiskServiceHandler) ListHighRisk(ctx context.Context, req *ListHighRiskRequest) (*ListHighRiskResponse, error) {
	var limit int
	if req != nil {
		limit = int(req.Limit)
	}

	results, err := h.listHighRisk.Execute(ctx, limit)
	if err != nil {
		h.logger.Error("failed to list high risk assessments", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &ListHighRiskResponse{Assessments: assessmentMsgs(results)}, nil
}

func assessmentMsg(a dto.AssessmentResponse) *RiskAssessmentMsg {
	return &RiskAssessmentMsg{
		ID:            a.ID.String(),
		StudentID:     a.StudentID,
		Score:         a.Score,
		Category:      a.Category,
		AttendancePct: a.AttendancePct,
		GradeAvg:      a.GradeAvg,
		IncidentCount: int32(a.IncidentCount),
		UsedFallback:  a.UsedFallback,
		ComputedAt:    a.ComputedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func assessmentMsgs(items []dto.AssessmentResponse) []*RiskAssessmentMsg {
	out := make([]*RiskAssessmentMsg, len(items))
	for i, a := range items {
		out[i] = assessmentMsg(a)
	}
	return out
}
