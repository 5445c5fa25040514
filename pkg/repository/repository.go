package repository

import (
	"context"
	"errors"

	"github.com/staffhub/staffhub/pkg/models"
)

// ErrDuplicate is returned when an insert loses a uniqueness race, e.g. a
// second check-in for the same day or a second enrollment in a course.
var ErrDuplicate = errors.New("duplicate record")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type RoleRepo interface {
	AssignRole(ctx context.Context, userID, role string) error
	// HasRole reports whether the user carries the given role.
	HasRole(ctx context.Context, userID, role string) (bool, error)
	GetRole(ctx context.Context, userID string) (string, error)
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	DeleteProfile(ctx context.Context, id string) error
}

type AttendanceRepo interface {
	CreateAttendance(ctx context.Context, a *models.Attendance) (string, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (*models.Attendance, error)
	SetCheckOut(ctx context.Context, id string, checkOut int64) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Attendance, error)
	ListByDate(ctx context.Context, date string) ([]models.Attendance, error)
}

type CourseRepo interface {
	CreateCourse(ctx context.Context, c *models.Course) (string, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, department string) ([]models.Course, error)
}

type EnrollmentRepo interface {
	CreateEnrollment(ctx context.Context, e *models.Enrollment) (string, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	SetQuizResult(ctx context.Context, id string, score int, completedAt int64) error
}

type QuizRepo interface {
	CreateQuizQuestion(ctx context.Context, q *models.QuizQuestion) (string, error)
	ListQuestionsByCourse(ctx context.Context, courseID string) ([]models.QuizQuestion, error)
	CreateAttempts(ctx context.Context, attempts []models.QuizAttempt) error
}

type InterviewRepo interface {
	CreateSession(ctx context.Context, s *models.InterviewSession) (string, error)
	GetSession(ctx context.Context, id string) (*models.InterviewSession, error)
	ListSessions(ctx context.Context) ([]models.InterviewSession, error)
	CreateQuestions(ctx context.Context, qs []models.InterviewQuestion) error
	ListQuestionsBySession(ctx context.Context, sessionID string) ([]models.InterviewQuestion, error)
	CreateResponses(ctx context.Context, rs []models.InterviewResponse) error
	ListResponsesBySession(ctx context.Context, sessionID string) ([]models.InterviewResponse, error)
	// CompleteSession moves a session to status completed exactly once.
	CompleteSession(ctx context.Context, id string, overallScore int, recommendation string, completedAt int64) error
}
