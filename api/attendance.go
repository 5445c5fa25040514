package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/staffhub/staffhub/pkg/models"
	"github.com/staffhub/staffhub/pkg/repository"
)

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepo
}

func NewAttendanceHandler(ar repository.AttendanceRepo) *AttendanceHandler {
	return &AttendanceHandler{attendanceRepo: ar}
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// CheckIn opens today's attendance record for the caller. The state check
// plus the UNIQUE(user_id, date) constraint keep it to one record per day.
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())
	ctx := r.Context()
	date := today()

	existing, err := h.attendanceRepo.GetByUserAndDate(ctx, s.UserID, date)
	if err != nil {
		http.Error(w, "failed to check attendance", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "already checked in today", http.StatusConflict)
		return
	}

	a := &models.Attendance{
		UserID:  s.UserID,
		Date:    date,
		CheckIn: time.Now().UTC().UnixMilli(),
		Status:  "present",
	}
	if _, err := h.attendanceRepo.CreateAttendance(ctx, a); err != nil {
		// a racing second check-in gets past the state check and loses on
		// the unique constraint instead
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "already checked in today", http.StatusConflict)
			return
		}
		http.Error(w, "failed to check in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, a, http.StatusCreated)
}

// CheckOut closes today's open record; check_in is never modified.
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())
	ctx := r.Context()

	a, err := h.attendanceRepo.GetByUserAndDate(ctx, s.UserID, today())
	if err != nil {
		http.Error(w, "failed to check attendance", http.StatusInternalServerError)
		return
	}
	if a == nil {
		http.Error(w, "not checked in today", http.StatusConflict)
		return
	}
	if a.CheckOut != nil {
		http.Error(w, "already checked out today", http.StatusConflict)
		return
	}

	out := time.Now().UTC().UnixMilli()
	if err := h.attendanceRepo.SetCheckOut(ctx, a.ID, out); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.CheckOut = &out

	writeJSON(w, a, http.StatusOK)
}

// Today returns the caller's attendance record for the current date.
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())

	a, err := h.attendanceRepo.GetByUserAndDate(r.Context(), s.UserID, today())
	if err != nil {
		http.Error(w, "failed to load attendance", http.StatusInternalServerError)
		return
	}
	if a == nil {
		http.Error(w, "no attendance record for today", http.StatusNotFound)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

// History returns the caller's recent attendance, newest first.
func (h *AttendanceHandler) History(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())

	records, err := h.attendanceRepo.ListByUser(r.Context(), s.UserID, 30)
	if err != nil {
		http.Error(w, "failed to list attendance", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}

	writeJSON(w, records, http.StatusOK)
}

// Overview returns every record for a date; admin dashboards use it.
func (h *AttendanceHandler) Overview(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	records, err := h.attendanceRepo.ListByDate(r.Context(), date)
	if err != nil {
		http.Error(w, "failed to list attendance", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}

	writeJSON(w, map[string]any{"date": date, "records": records}, http.StatusOK)
}
