package sqlite

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffhub/staffhub/internal/db"
	"github.com/staffhub/staffhub/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.RoleRepo = (*SQLiteRepo)(nil)
var _ repository.ProfileRepo = (*SQLiteRepo)(nil)
var _ repository.AttendanceRepo = (*SQLiteRepo)(nil)
var _ repository.CourseRepo = (*SQLiteRepo)(nil)
var _ repository.EnrollmentRepo = (*SQLiteRepo)(nil)
var _ repository.QuizRepo = (*SQLiteRepo)(nil)
var _ repository.InterviewRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

func newID() string {
	return uuid.NewString()
}
