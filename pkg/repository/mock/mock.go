package mock

import (
	"context"
	"fmt"

	"github.com/staffhub/staffhub/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo       *mockUserRepo
	RoleRepo       *mockRoleRepo
	ProfileRepo    *mockProfileRepo
	AttendanceRepo *mockAttendanceRepo
	CourseRepo     *mockCourseRepo
	EnrollmentRepo *mockEnrollmentRepo
	QuizRepo       *mockQuizRepo
	InterviewRepo  *MockInterviewRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:       &mockUserRepo{},
		RoleRepo:       &mockRoleRepo{Roles: map[string]string{}},
		ProfileRepo:    &mockProfileRepo{},
		AttendanceRepo: &mockAttendanceRepo{},
		CourseRepo:     &mockCourseRepo{},
		EnrollmentRepo: &mockEnrollmentRepo{},
		QuizRepo:       &mockQuizRepo{},
		InterviewRepo:  &MockInterviewRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if u.ID == "" {
		u.ID = "user-1"
	}
	m.Stored = u
	return u.ID, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id string) error {
	if m.Stored != nil && m.Stored.ID == id {
		m.Stored = nil
	}
	return nil
}

type mockRoleRepo struct {
	Roles map[string]string
}

func (m *mockRoleRepo) AssignRole(ctx context.Context, userID, role string) error {
	m.Roles[userID] = role
	return nil
}

func (m *mockRoleRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	return m.Roles[userID] == role, nil
}

func (m *mockRoleRepo) GetRole(ctx context.Context, userID string) (string, error) {
	return m.Roles[userID], nil
}

type mockProfileRepo struct {
	Profiles []models.Profile
	ListErr  error
}

func (m *mockProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	m.Profiles = append(m.Profiles, *p)
	return nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	for i := range m.Profiles {
		if m.Profiles[i].ID == id {
			return &m.Profiles[i], nil
		}
	}
	return nil, nil
}

func (m *mockProfileRepo) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Profiles, nil
}

func (m *mockProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	for i := range m.Profiles {
		if m.Profiles[i].ID == p.ID {
			m.Profiles[i] = *p
			return nil
		}
	}
	return fmt.Errorf("profile not found")
}

func (m *mockProfileRepo) DeleteProfile(ctx context.Context, id string) error {
	for i := range m.Profiles {
		if m.Profiles[i].ID == id {
			m.Profiles = append(m.Profiles[:i], m.Profiles[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockAttendanceRepo struct {
	Records   []models.Attendance
	CreateErr error
}

func (m *mockAttendanceRepo) CreateAttendance(ctx context.Context, a *models.Attendance) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("att-%d", len(m.Records)+1)
	}
	m.Records = append(m.Records, *a)
	return a.ID, nil
}

func (m *mockAttendanceRepo) GetByUserAndDate(ctx context.Context, userID, date string) (*models.Attendance, error) {
	for i := range m.Records {
		if m.Records[i].UserID == userID && m.Records[i].Date == date {
			return &m.Records[i], nil
		}
	}
	return nil, nil
}

func (m *mockAttendanceRepo) SetCheckOut(ctx context.Context, id string, checkOut int64) error {
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records[i].CheckOut = &checkOut
			return nil
		}
	}
	return fmt.Errorf("attendance not found")
}

func (m *mockAttendanceRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range m.Records {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range m.Records {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockCourseRepo struct {
	Courses []models.Course
}

func (m *mockCourseRepo) CreateCourse(ctx context.Context, c *models.Course) (string, error) {
	if c.ID == "" {
		c.ID = fmt.Sprintf("course-%d", len(m.Courses)+1)
	}
	m.Courses = append(m.Courses, *c)
	return c.ID, nil
}

func (m *mockCourseRepo) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	for i := range m.Courses {
		if m.Courses[i].ID == id {
			return &m.Courses[i], nil
		}
	}
	return nil, nil
}

func (m *mockCourseRepo) ListCourses(ctx context.Context, department string) ([]models.Course, error) {
	if department == "" {
		return m.Courses, nil
	}
	var out []models.Course
	for _, c := range m.Courses {
		if c.Department == department {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockEnrollmentRepo struct {
	Enrollments []models.Enrollment
	LastScore   *int
}

func (m *mockEnrollmentRepo) CreateEnrollment(ctx context.Context, e *models.Enrollment) (string, error) {
	if e.ID == "" {
		e.ID = fmt.Sprintf("enr-%d", len(m.Enrollments)+1)
	}
	m.Enrollments = append(m.Enrollments, *e)
	return e.ID, nil
}

func (m *mockEnrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	for i := range m.Enrollments {
		if m.Enrollments[i].UserID == userID && m.Enrollments[i].CourseID == courseID {
			return &m.Enrollments[i], nil
		}
	}
	return nil, nil
}

func (m *mockEnrollmentRepo) ListEnrollmentsByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range m.Enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepo) SetQuizResult(ctx context.Context, id string, score int, completedAt int64) error {
	for i := range m.Enrollments {
		if m.Enrollments[i].ID == id {
			m.Enrollments[i].QuizScore = &score
			m.Enrollments[i].CompletedAt = &completedAt
			m.LastScore = &score
			return nil
		}
	}
	return fmt.Errorf("enrollment not found")
}

type mockQuizRepo struct {
	Questions []models.QuizQuestion
	Attempts  []models.QuizAttempt
}

func (m *mockQuizRepo) CreateQuizQuestion(ctx context.Context, q *models.QuizQuestion) (string, error) {
	if q.ID == "" {
		q.ID = fmt.Sprintf("q-%d", len(m.Questions)+1)
	}
	m.Questions = append(m.Questions, *q)
	return q.ID, nil
}

func (m *mockQuizRepo) ListQuestionsByCourse(ctx context.Context, courseID string) ([]models.QuizQuestion, error) {
	var out []models.QuizQuestion
	for _, q := range m.Questions {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuizRepo) CreateAttempts(ctx context.Context, attempts []models.QuizAttempt) error {
	m.Attempts = append(m.Attempts, attempts...)
	return nil
}

// MockInterviewRepo is exported so interview handler tests can assert on
// persisted state directly.
type MockInterviewRepo struct {
	Sessions       []models.InterviewSession
	Questions      []models.InterviewQuestion
	Responses      []models.InterviewResponse
	CreateSessErr  error
	CreateQsErr    error
	CompleteCalled bool
}

func (m *MockInterviewRepo) CreateSession(ctx context.Context, s *models.InterviewSession) (string, error) {
	if m.CreateSessErr != nil {
		return "", m.CreateSessErr
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("sess-%d", len(m.Sessions)+1)
	}
	m.Sessions = append(m.Sessions, *s)
	return s.ID, nil
}

func (m *MockInterviewRepo) GetSession(ctx context.Context, id string) (*models.InterviewSession, error) {
	for i := range m.Sessions {
		if m.Sessions[i].ID == id {
			return &m.Sessions[i], nil
		}
	}
	return nil, nil
}

func (m *MockInterviewRepo) ListSessions(ctx context.Context) ([]models.InterviewSession, error) {
	return m.Sessions, nil
}

func (m *MockInterviewRepo) CreateQuestions(ctx context.Context, qs []models.InterviewQuestion) error {
	if m.CreateQsErr != nil {
		return m.CreateQsErr
	}
	for i := range qs {
		if qs[i].ID == "" {
			qs[i].ID = fmt.Sprintf("iq-%d", len(m.Questions)+1+i)
		}
		qs[i].Position = i
	}
	m.Questions = append(m.Questions, qs...)
	return nil
}

func (m *MockInterviewRepo) ListQuestionsBySession(ctx context.Context, sessionID string) ([]models.InterviewQuestion, error) {
	var out []models.InterviewQuestion
	for _, q := range m.Questions {
		if q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *MockInterviewRepo) CreateResponses(ctx context.Context, rs []models.InterviewResponse) error {
	m.Responses = append(m.Responses, rs...)
	return nil
}

func (m *MockInterviewRepo) ListResponsesBySession(ctx context.Context, sessionID string) ([]models.InterviewResponse, error) {
	return m.Responses, nil
}

func (m *MockInterviewRepo) CompleteSession(ctx context.Context, id string, overallScore int, recommendation string, completedAt int64) error {
	for i := range m.Sessions {
		if m.Sessions[i].ID == id {
			m.Sessions[i].Status = models.SessionCompleted
			m.Sessions[i].OverallScore = &overallScore
			m.Sessions[i].Recommendation = &recommendation
			m.Sessions[i].CompletedAt = &completedAt
			m.CompleteCalled = true
			return nil
		}
	}
	return fmt.Errorf("session not found")
}
