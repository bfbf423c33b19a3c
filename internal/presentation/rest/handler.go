// Package rest exposes the risk service HTTP API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/usecase"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

// Handler wires the use cases into HTTP routes.
type Handler struct {
	recordAttendance *usecase.RecordAttendance
	scoreStudent     *usecase.ScoreStudent
	getStudentRisk   *usecase.GetStudentRisk
	listHighRisk     *usecase.ListHighRisk
	listUnread       *usecase.ListUnreadAlerts
	markRead         *usecase.MarkAlertRead
	validate         *validator.Validate
	logger           *slog.Logger
}

// NewHandler creates the REST handler.
func NewHandler(
	recordAttendance *usecase.RecordAttendance,
	scoreStudent *usecase.ScoreStudent,
	getStudentRisk *usecase.GetStudentRisk,
	listHighRisk *usecase.ListHighRisk,
	listUnread *usecase.ListUnreadAlerts,
	markRead *usecase.MarkAlertRead,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		recordAttendance: recordAttendance,
		scoreStudent:     scoreStudent,
		getStudentRisk:   getStudentRisk,
		listHighRisk:     listHighRisk,
		listUnread:       listUnread,
		markRead:         markRead,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/attendance", h.RecordAttendance)
	mux.HandleFunc("POST /api/v1/students/{id}/score", h.ScoreStudent)
	mux.HandleFunc("GET /api/v1/students/{id}/risk", h.GetStudentRisk)
	mux.HandleFunc("GET /api/v1/risk/high", h.ListHighRisk)
	mux.HandleFunc("GET /api/v1/alerts/unread", h.ListUnreadAlerts)
	mux.HandleFunc("POST /api/v1/alerts/{id}/read", h.MarkAlertRead)
}

type recordAttendanceBody struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	MarkedBy  int64  `json:"marked_by" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
	ClassName string `json:"class_name" validate:"omitempty,max=120"`
}

// RecordAttendance handles POST /api/v1/attendance.
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var body recordAttendanceBody
	if !h.decodeAndValidate(w, r, &body) {
		return
	}

	date, _ := time.Parse("2006-01-02", body.Date)
	resp, err := h.recordAttendance.Execute(r.Context(), dto.RecordAttendanceRequest{
		StudentID: body.StudentID,
		MarkedBy:  body.MarkedBy,
		Date:      date,
		Status:    body.Status,
		ClassName: body.ClassName,
	})
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

// ScoreStudent handles POST /api/v1/students/{id}/score. It runs the
// scoring pipeline synchronously and returns the persisted assessment.
func (h *Handler) ScoreStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.scoreStudent.Execute(r.Context(), dto.ScoreStudentRequest{StudentID: studentID})
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

// GetStudentRisk handles GET /api/v1/students/{id}/risk.
func (h *Handler) GetStudentRisk(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.getStudentRisk.Execute(r.Context(), dto.GetStudentRiskRequest{
		StudentID: studentID,
		Limit:     queryInt(r, "limit"),
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ListHighRisk handles GET /api/v1/risk/high.
func (h *Handler) ListHighRisk(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listHighRisk.Execute(r.Context(), queryInt(r, "limit"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ListUnreadAlerts handles GET /api/v1/alerts/unread.
func (h *Handler) ListUnreadAlerts(w http.ResponseWriter, r *http.Request) {
	recipientID, err := strconv.ParseInt(r.URL.Query().Get("recipient_id"), 10, 64)
	if err != nil || recipientID <= 0 {
		h.writeError(w, http.StatusBadRequest, errors.New("recipient_id query parameter is required"))
		return
	}

	resp, err := h.listUnread.Execute(r.Context(), recipientID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type markAlertReadBody struct {
	RecipientID int64 `json:"recipient_id" validate:"required,gt=0"`
}

// MarkAlertRead handles POST /api/v1/alerts/{id}/read.
func (h *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	alertID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid alert id"))
		return
	}

	var body markAlertReadBody
	if !h.decodeAndValidate(w, r, &body) {
		return
	}

	err = h.markRead.Execute(r.Context(), dto.MarkAlertReadRequest{
		AlertID:     alertID,
		RecipientID: body.RecipientID,
	})
	if errors.Is(err, port.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, errors.New("alert not found"))
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, body any) bool {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return false
	}
	if err := h.validate.Struct(body); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid student id"))
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String("error", err.Error()))
	}
	h.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
