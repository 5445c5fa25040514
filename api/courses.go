package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/staffhub/staffhub/internal/quiz"
	"github.com/staffhub/staffhub/pkg/models"
	"github.com/staffhub/staffhub/pkg/repository"
)

type CoursesHandler struct {
	courseRepo     repository.CourseRepo
	enrollmentRepo repository.EnrollmentRepo
	quizRepo       repository.QuizRepo
}

func NewCoursesHandler(cr repository.CourseRepo, er repository.EnrollmentRepo, qr repository.QuizRepo) *CoursesHandler {
	return &CoursesHandler{courseRepo: cr, enrollmentRepo: er, quizRepo: qr}
}

func (h *CoursesHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	if department != "" && !models.ValidDepartment(department) {
		http.Error(w, "unknown department", http.StatusBadRequest)
		return
	}

	courses, err := h.courseRepo.ListCourses(r.Context(), department)
	if err != nil {
		http.Error(w, "failed to list courses", http.StatusInternalServerError)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	writeJSON(w, courses, http.StatusOK)
}

type createCourseRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Department    string `json:"department" validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"gte=0"`
}

func (h *CoursesHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
		return
	}
	if !models.ValidDepartment(req.Department) {
		http.Error(w, "unknown department", http.StatusBadRequest)
		return
	}

	c := &models.Course{
		Title:         req.Title,
		Description:   req.Description,
		Department:    req.Department,
		DurationHours: req.DurationHours,
	}
	if _, err := h.courseRepo.CreateCourse(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, c, http.StatusCreated)
}

// Enroll creates the caller's enrollment; one per (user, course).
func (h *CoursesHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())
	courseID := mux.Vars(r)["id"]
	ctx := r.Context()

	course, err := h.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		http.Error(w, "failed to load course", http.StatusInternalServerError)
		return
	}
	if course == nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}

	existing, err := h.enrollmentRepo.GetByUserAndCourse(ctx, s.UserID, courseID)
	if err != nil {
		http.Error(w, "failed to check enrollment", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "already enrolled", http.StatusConflict)
		return
	}

	e := &models.Enrollment{UserID: s.UserID, CourseID: courseID}
	if _, err := h.enrollmentRepo.CreateEnrollment(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "already enrolled", http.StatusConflict)
			return
		}
		http.Error(w, "failed to enroll", http.StatusInternalServerError)
		return
	}

	writeJSON(w, e, http.StatusCreated)
}

func (h *CoursesHandler) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())

	enrollments, err := h.enrollmentRepo.ListEnrollmentsByUser(r.Context(), s.UserID)
	if err != nil {
		http.Error(w, "failed to list enrollments", http.StatusInternalServerError)
		return
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}

	writeJSON(w, enrollments, http.StatusOK)
}

// GetQuiz returns a course's questions with the correct answers withheld.
func (h *CoursesHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]

	questions, err := h.quizRepo.ListQuestionsByCourse(r.Context(), courseID)
	if err != nil {
		http.Error(w, "failed to list questions", http.StatusInternalServerError)
		return
	}
	for i := range questions {
		questions[i].CorrectAnswer = ""
	}
	if questions == nil {
		questions = []models.QuizQuestion{}
	}

	writeJSON(w, questions, http.StatusOK)
}

type submitQuizRequest struct {
	Answers []quiz.Answer `json:"answers" validate:"required,min=1,dive"`
}

// SubmitQuiz grades a submission, bulk-inserts the attempt rows and records
// the score on the enrollment.
func (h *CoursesHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())
	courseID := mux.Vars(r)["id"]

	var req submitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.Answers) == 0 {
		http.Error(w, "answers are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	enrollment, err := h.enrollmentRepo.GetByUserAndCourse(ctx, s.UserID, courseID)
	if err != nil {
		http.Error(w, "failed to check enrollment", http.StatusInternalServerError)
		return
	}
	if enrollment == nil {
		http.Error(w, "not enrolled in this course", http.StatusNotFound)
		return
	}

	questions, err := h.quizRepo.ListQuestionsByCourse(ctx, courseID)
	if err != nil {
		http.Error(w, "failed to list questions", http.StatusInternalServerError)
		return
	}
	if len(questions) == 0 {
		http.Error(w, "course has no quiz", http.StatusNotFound)
		return
	}

	summary := quiz.Grade(questions, req.Answers)

	attempts := make([]models.QuizAttempt, 0, len(summary.Results))
	for _, res := range summary.Results {
		attempts = append(attempts, models.QuizAttempt{
			EnrollmentID:   enrollment.ID,
			QuestionID:     res.QuestionID,
			SelectedAnswer: res.SelectedAnswer,
			IsCorrect:      res.IsCorrect,
		})
	}
	if err := h.quizRepo.CreateAttempts(ctx, attempts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.enrollmentRepo.SetQuizResult(ctx, enrollment.ID, summary.Score, time.Now().UTC().UnixMilli()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}

type createQuizQuestionRequest struct {
	QuestionText  string `json:"question_text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
}

// CreateQuizQuestion authors a question; the correct answer must be one of
// the four options.
func (h *CoursesHandler) CreateQuizQuestion(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]

	var req createQuizQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
		return
	}
	switch req.CorrectAnswer {
	case req.OptionA, req.OptionB, req.OptionC, req.OptionD:
	default:
		http.Error(w, "correct_answer must match one of the options", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	course, err := h.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		http.Error(w, "failed to load course", http.StatusInternalServerError)
		return
	}
	if course == nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}

	q := &models.QuizQuestion{
		CourseID:      courseID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
	}
	if _, err := h.quizRepo.CreateQuizQuestion(ctx, q); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, q, http.StatusCreated)
}
