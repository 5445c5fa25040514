package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	migrations "github.com/staffhub/staffhub/db"
	dbpkg "github.com/staffhub/staffhub/internal/db"
	sqlite "github.com/staffhub/staffhub/internal/repository/sqlite"
	"github.com/staffhub/staffhub/pkg/models"
	"github.com/staffhub/staffhub/pkg/repository"
)

func setupRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	d, err := dbpkg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, migrations.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return sqlite.New(d, nil)
}

func seedUser(t *testing.T, repo *sqlite.SQLiteRepo, email string) string {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{Email: email, PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

// seedEmployee creates a user with its profile row; attendance and
// enrollments hang off the profile.
func seedEmployee(t *testing.T, repo *sqlite.SQLiteRepo, email string) string {
	t.Helper()
	id := seedUser(t, repo, email)
	if err := repo.CreateProfile(context.Background(), &models.Profile{ID: id, FullName: "Test User", Email: email}); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	got, err := repo.GetUserByID(ctx, "missing")
	if err != nil {
		t.Fatalf("expected no error for missing id, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %#v", got)
	}

	id := seedUser(t, repo, "alice@example.com")

	byEmail, err := repo.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("unexpected user: %#v", byEmail)
	}

	// duplicate email violates the unique constraint
	if _, err := repo.CreateUser(ctx, &models.User{Email: "alice@example.com", PasswordHash: "h"}); err == nil {
		t.Fatalf("expected error for duplicate email")
	}

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	byEmail, err = repo.GetUserByEmail(ctx, "alice@example.com")
	if err != nil || byEmail != nil {
		t.Fatalf("user not deleted: %#v (%v)", byEmail, err)
	}
}

func TestRoles(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := seedUser(t, repo, "bob@example.com")

	role, err := repo.GetRole(ctx, id)
	if err != nil || role != "" {
		t.Fatalf("expected empty role, got %q (%v)", role, err)
	}

	if err := repo.AssignRole(ctx, id, models.RoleEmployee); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	// re-assigning the same role is a no-op
	if err := repo.AssignRole(ctx, id, models.RoleEmployee); err != nil {
		t.Fatalf("re-assign role: %v", err)
	}

	ok, err := repo.HasRole(ctx, id, models.RoleEmployee)
	if err != nil || !ok {
		t.Fatalf("HasRole(employee) = %v, %v", ok, err)
	}
	ok, err = repo.HasRole(ctx, id, models.RoleAdmin)
	if err != nil || ok {
		t.Fatalf("HasRole(admin) = %v, %v", ok, err)
	}

	// admin wins when both roles are present
	if err := repo.AssignRole(ctx, id, models.RoleAdmin); err != nil {
		t.Fatalf("assign admin: %v", err)
	}
	role, err = repo.GetRole(ctx, id)
	if err != nil || role != models.RoleAdmin {
		t.Fatalf("GetRole = %q, %v", role, err)
	}
}

func TestProfileCascadeOnUserDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := seedUser(t, repo, "carol@example.com")

	dept := "Engineering"
	if err := repo.CreateProfile(ctx, &models.Profile{ID: id, FullName: "Carol", Email: "carol@example.com", Department: &dept}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	p, err := repo.GetProfile(ctx, id)
	if err != nil || p == nil {
		t.Fatalf("get profile: %#v, %v", p, err)
	}
	if p.Department == nil || *p.Department != "Engineering" {
		t.Fatalf("department not stored: %#v", p)
	}

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	p, err = repo.GetProfile(ctx, id)
	if err != nil {
		t.Fatalf("get profile after delete: %v", err)
	}
	if p != nil {
		t.Fatalf("profile must cascade with the user row: %#v", p)
	}
}

func TestAttendanceUniquePerDay(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := seedEmployee(t, repo, "dave@example.com")

	attID, err := repo.CreateAttendance(ctx, &models.Attendance{UserID: id, Date: "2026-03-02", CheckIn: 1000, Status: "present"})
	if err != nil {
		t.Fatalf("create attendance: %v", err)
	}

	// one record per (user, date)
	if _, err := repo.CreateAttendance(ctx, &models.Attendance{UserID: id, Date: "2026-03-02", CheckIn: 2000, Status: "present"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same user and date, got %v", err)
	}

	if err := repo.SetCheckOut(ctx, attID, 9000); err != nil {
		t.Fatalf("set check out: %v", err)
	}
	a, err := repo.GetByUserAndDate(ctx, id, "2026-03-02")
	if err != nil || a == nil {
		t.Fatalf("get attendance: %#v, %v", a, err)
	}
	if a.CheckIn != 1000 {
		t.Fatalf("check_in was modified: %d", a.CheckIn)
	}
	if a.CheckOut == nil || *a.CheckOut != 9000 {
		t.Fatalf("check_out not set: %#v", a.CheckOut)
	}

	records, err := repo.ListByDate(ctx, "2026-03-02")
	if err != nil || len(records) != 1 {
		t.Fatalf("list by date: %d records, %v", len(records), err)
	}

	history, err := repo.ListByUser(ctx, id, 30)
	if err != nil || len(history) != 1 || history[0].ID != attID {
		t.Fatalf("list by user: %#v, %v", history, err)
	}
}

func TestEnrollmentUniqueAndQuizResult(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedEmployee(t, repo, "erin@example.com")

	courseID, err := repo.CreateCourse(ctx, &models.Course{Title: "Security", Department: "Engineering", DurationHours: 4})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	enrID, err := repo.CreateEnrollment(ctx, &models.Enrollment{UserID: userID, CourseID: courseID})
	if err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
	if _, err := repo.CreateEnrollment(ctx, &models.Enrollment{UserID: userID, CourseID: courseID}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for duplicate enrollment, got %v", err)
	}

	if err := repo.SetQuizResult(ctx, enrID, 75, 12345); err != nil {
		t.Fatalf("set quiz result: %v", err)
	}
	e, err := repo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil || e == nil {
		t.Fatalf("get enrollment: %#v, %v", e, err)
	}
	if e.QuizScore == nil || *e.QuizScore != 75 || e.CompletedAt == nil || *e.CompletedAt != 12345 {
		t.Fatalf("quiz result not stored: %#v", e)
	}

	list, err := repo.ListEnrollmentsByUser(ctx, userID)
	if err != nil || len(list) != 1 || list[0].ID != enrID {
		t.Fatalf("list enrollments by user: %#v, %v", list, err)
	}
}

func TestQuizQuestionsAndAttempts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := seedEmployee(t, repo, "frank@example.com")

	courseID, err := repo.CreateCourse(ctx, &models.Course{Title: "Compliance", Department: "Finance"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	enrID, err := repo.CreateEnrollment(ctx, &models.Enrollment{UserID: userID, CourseID: courseID})
	if err != nil {
		t.Fatalf("create enrollment: %v", err)
	}

	qID, err := repo.CreateQuizQuestion(ctx, &models.QuizQuestion{
		CourseID: courseID, QuestionText: "Pick", OptionA: "A", OptionB: "B", OptionC: "C", OptionD: "D", CorrectAnswer: "B",
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	questions, err := repo.ListQuestionsByCourse(ctx, courseID)
	if err != nil || len(questions) != 1 || questions[0].ID != qID {
		t.Fatalf("list questions: %#v, %v", questions, err)
	}

	attempts := []models.QuizAttempt{
		{EnrollmentID: enrID, QuestionID: qID, SelectedAnswer: "B", IsCorrect: true},
	}
	if err := repo.CreateAttempts(ctx, attempts); err != nil {
		t.Fatalf("create attempts: %v", err)
	}
}

func TestInterviewLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	adminID := seedUser(t, repo, "hr@example.com")

	sessionID, err := repo.CreateSession(ctx, &models.InterviewSession{
		CandidateName:  "Dana",
		CandidateEmail: "dana@example.com",
		Position:       "Backend Engineer",
		Department:     "Engineering",
		Status:         models.SessionPending,
		CreatedBy:      adminID,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	questions := []models.InterviewQuestion{
		{SessionID: sessionID, QuestionText: "Q1", QuestionCategory: "technical", ExpectedPoints: []string{"depth", "clarity"}},
		{SessionID: sessionID, QuestionText: "Q2", QuestionCategory: "behavioral", ExpectedPoints: []string{"honesty"}},
	}
	if err := repo.CreateQuestions(ctx, questions); err != nil {
		t.Fatalf("create questions: %v", err)
	}

	stored, err := repo.ListQuestionsBySession(ctx, sessionID)
	if err != nil || len(stored) != 2 {
		t.Fatalf("list questions: %d, %v", len(stored), err)
	}
	// bulk inserts share a millisecond; position keeps generation order
	if stored[0].QuestionText != "Q1" || stored[1].QuestionText != "Q2" {
		t.Fatalf("question order not preserved: %q, %q", stored[0].QuestionText, stored[1].QuestionText)
	}
	if stored[0].Position != 0 || stored[1].Position != 1 {
		t.Fatalf("positions not stored: %d, %d", stored[0].Position, stored[1].Position)
	}
	// expected_points survives the TEXT column roundtrip
	if len(stored[0].ExpectedPoints) != 2 || stored[0].ExpectedPoints[0] != "depth" {
		t.Fatalf("expected points mangled: %#v", stored[0].ExpectedPoints)
	}

	score := 8
	feedback := "solid"
	responses := []models.InterviewResponse{
		{QuestionID: stored[0].ID, ResponseText: "r1", Score: &score, Feedback: &feedback},
	}
	if err := repo.CreateResponses(ctx, responses); err != nil {
		t.Fatalf("create responses: %v", err)
	}

	// one response per question
	if err := repo.CreateResponses(ctx, []models.InterviewResponse{
		{QuestionID: stored[0].ID, ResponseText: "again"},
	}); err == nil {
		t.Fatalf("expected unique constraint error for second response to a question")
	}

	got, err := repo.ListResponsesBySession(ctx, sessionID)
	if err != nil || len(got) != 1 {
		t.Fatalf("list responses: %d, %v", len(got), err)
	}
	if got[0].Score == nil || *got[0].Score != 8 || got[0].Feedback == nil || *got[0].Feedback != "solid" {
		t.Fatalf("response fields not stored: %#v", got[0])
	}

	if err := repo.CompleteSession(ctx, sessionID, 8, "Hire.", 999); err != nil {
		t.Fatalf("complete session: %v", err)
	}
	// a session completes exactly once
	if err := repo.CompleteSession(ctx, sessionID, 9, "again", 1000); err == nil {
		t.Fatalf("expected error completing a non-pending session")
	}

	s, err := repo.GetSession(ctx, sessionID)
	if err != nil || s == nil {
		t.Fatalf("get session: %#v, %v", s, err)
	}
	if s.Status != models.SessionCompleted || s.OverallScore == nil || *s.OverallScore != 8 {
		t.Fatalf("session not finalized: %#v", s)
	}
	if s.Recommendation == nil || *s.Recommendation != "Hire." || s.CompletedAt == nil || *s.CompletedAt != 999 {
		t.Fatalf("completion fields not stored: %#v", s)
	}

	sessions, err := repo.ListSessions(ctx)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("list sessions: %d, %v", len(sessions), err)
	}
}
