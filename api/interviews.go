package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/staffhub/staffhub/internal/interview"
	"github.com/staffhub/staffhub/pkg/aigateway"
	"github.com/staffhub/staffhub/pkg/models"
	"github.com/staffhub/staffhub/pkg/repository"
)

// InterviewEngine is the orchestration surface the handler depends on.
type InterviewEngine interface {
	GenerateQuestions(ctx context.Context, position, department string) ([]interview.Question, error)
	EvaluateResponses(ctx context.Context, position, department string, items []interview.ResponseItem) (*interview.BatchResult, error)
}

type InterviewsHandler struct {
	engine        InterviewEngine
	interviewRepo repository.InterviewRepo
}

func NewInterviewsHandler(engine InterviewEngine, ir repository.InterviewRepo) *InterviewsHandler {
	return &InterviewsHandler{engine: engine, interviewRepo: ir}
}

// aiRequest is the action-dispatch body of POST /v1/interviews/ai.
type aiRequest struct {
	Action string `json:"action"`

	// generate_questions
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`

	// shared
	Position   string `json:"position"`
	Department string `json:"department"`

	// evaluate_responses
	SessionID string                   `json:"session_id"`
	Responses []interview.ResponseItem `json:"responses"`
}

// Dispatch routes the orchestration request by its action tag.
func (h *InterviewsHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req aiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "generate_questions":
		h.generate(w, r, &req)
	case "evaluate_responses":
		h.evaluate(w, r, &req)
	default:
		writeError(w, "unknown action", http.StatusBadRequest)
	}
}

type generateRequest struct {
	CandidateName  string `validate:"required"`
	CandidateEmail string `validate:"required,email"`
	Position       string `validate:"required"`
	Department     string `validate:"required"`
}

// generate creates a pending session, requests the question set from the
// model gateway and persists it. The session insert and the question bulk
// insert are two separate steps; a gateway failure in between leaves a
// pending session with zero questions and the operator re-invokes.
func (h *InterviewsHandler) generate(w http.ResponseWriter, r *http.Request, req *aiRequest) {
	in := generateRequest{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Position:       req.Position,
		Department:     req.Department,
	}
	if err := validate.Struct(in); err != nil {
		writeError(w, "missing or invalid fields", http.StatusBadRequest)
		return
	}

	s, _ := SessionFromContext(r.Context())
	ctx := r.Context()

	session := &models.InterviewSession{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Position:       req.Position,
		Department:     req.Department,
		Status:         models.SessionPending,
		CreatedBy:      s.UserID,
	}
	sessionID, err := h.interviewRepo.CreateSession(ctx, session)
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	questions, err := h.engine.GenerateQuestions(ctx, req.Position, req.Department)
	if err != nil {
		status, msg := gatewayStatus(err, "Failed to generate questions")
		writeError(w, msg, status)
		return
	}

	rows := make([]models.InterviewQuestion, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, models.InterviewQuestion{
			SessionID:        sessionID,
			QuestionText:     q.Question,
			QuestionCategory: q.Category,
			ExpectedPoints:   q.ExpectedPoints,
		})
	}
	if err := h.interviewRepo.CreateQuestions(ctx, rows); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"session_id": sessionID, "questions": questions}, http.StatusOK)
}

// evaluate scores a full response batch and finalizes the session. The batch
// is all-or-nothing: any member failure aborts before anything is persisted.
func (h *InterviewsHandler) evaluate(w http.ResponseWriter, r *http.Request, req *aiRequest) {
	if len(req.Responses) == 0 {
		writeError(w, "responses must not be empty", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		writeError(w, "session_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	session, err := h.interviewRepo.GetSession(ctx, req.SessionID)
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if session == nil {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	if session.Status != models.SessionPending {
		writeError(w, "session already completed", http.StatusConflict)
		return
	}

	result, err := h.engine.EvaluateResponses(ctx, req.Position, req.Department, req.Responses)
	if err != nil {
		if errors.Is(err, interview.ErrEmptyBatch) {
			writeError(w, "responses must not be empty", http.StatusBadRequest)
			return
		}
		status, msg := gatewayStatus(err, "Failed to evaluate responses")
		writeError(w, msg, status)
		return
	}

	evalByQuestion := make(map[string]interview.Evaluation, len(result.Evaluations))
	for _, ev := range result.Evaluations {
		evalByQuestion[ev.QuestionID] = ev
	}

	rows := make([]models.InterviewResponse, 0, len(req.Responses))
	for _, item := range req.Responses {
		ev := evalByQuestion[item.QuestionID]
		score := ev.Score
		feedback := ev.Feedback
		rows = append(rows, models.InterviewResponse{
			QuestionID:   item.QuestionID,
			ResponseText: item.Response,
			Score:        &score,
			Feedback:     &feedback,
		})
	}
	if err := h.interviewRepo.CreateResponses(ctx, rows); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	completedAt := time.Now().UTC().UnixMilli()
	if err := h.interviewRepo.CompleteSession(ctx, req.SessionID, result.OverallScore, result.Recommendation, completedAt); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

// ListSessions returns interview sessions, newest first.
func (h *InterviewsHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.interviewRepo.ListSessions(r.Context())
	if err != nil {
		writeError(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []models.InterviewSession{}
	}

	writeJSON(w, sessions, http.StatusOK)
}

// GetSession returns one session with its questions and responses.
func (h *InterviewsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	session, err := h.interviewRepo.GetSession(ctx, id)
	if err != nil {
		writeError(w, "failed to load session", http.StatusInternalServerError)
		return
	}
	if session == nil {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}

	questions, err := h.interviewRepo.ListQuestionsBySession(ctx, id)
	if err != nil {
		writeError(w, "failed to load questions", http.StatusInternalServerError)
		return
	}
	responses, err := h.interviewRepo.ListResponsesBySession(ctx, id)
	if err != nil {
		writeError(w, "failed to load responses", http.StatusInternalServerError)
		return
	}
	if questions == nil {
		questions = []models.InterviewQuestion{}
	}
	if responses == nil {
		responses = []models.InterviewResponse{}
	}

	writeJSON(w, map[string]any{
		"session":   session,
		"questions": questions,
		"responses": responses,
	}, http.StatusOK)
}

// gatewayStatus maps engine failures onto the orchestration error contract:
// rate-limit and billing errors keep their upstream status, configuration and
// protocol errors collapse to a generic 500 message.
func gatewayStatus(err error, generic string) (int, string) {
	switch {
	case errors.Is(err, aigateway.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	case errors.Is(err, aigateway.ErrPaymentRequired):
		return http.StatusPaymentRequired, "Payment required. Please add credits to your AI workspace."
	case errors.Is(err, aigateway.ErrMissingAPIKey):
		return http.StatusInternalServerError, "AI gateway credential is not configured"
	}
	logger.Error("interview orchestration failed", slog.Any("err", err))
	return http.StatusInternalServerError, generic
}
