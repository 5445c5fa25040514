package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Roles assignable to a user.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Departments is the fixed set of valid department values.
var Departments = []string{
	"Engineering",
	"Human Resources",
	"Marketing",
	"Sales",
	"Finance",
	"Operations",
	"Customer Support",
	"Product Management",
}

// ValidDepartment reports whether d is a member of the department enum.
func ValidDepartment(d string) bool {
	for _, v := range Departments {
		if v == d {
			return true
		}
	}
	return false
}

// Interview session lifecycle.
const (
	SessionPending   = "pending"
	SessionCompleted = "completed"
)

// Interview question categories.
const (
	CategoryTechnical   = "technical"
	CategoryBehavioral  = "behavioral"
	CategorySituational = "situational"
)

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type Profile struct {
	ID         string   `json:"id" db:"id"`
	FullName   string   `json:"full_name" db:"full_name"`
	Email      string   `json:"email" db:"email"`
	Department *string  `json:"department,omitempty" db:"department"`
	Salary     *float64 `json:"salary,omitempty" db:"salary"`
	Created    int64    `json:"created" db:"created"`
	Updated    int64    `json:"updated" db:"updated"`
}

type Attendance struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"user_id" db:"user_id"`
	Date     string `json:"date" db:"date"` // YYYY-MM-DD
	CheckIn  int64  `json:"check_in" db:"check_in"`
	CheckOut *int64 `json:"check_out,omitempty" db:"check_out"`
	Status   string `json:"status" db:"status"`
	Created  int64  `json:"created" db:"created"`
}

type Course struct {
	ID            string `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	Description   string `json:"description,omitempty" db:"description"`
	Department    string `json:"department" db:"department"`
	DurationHours int    `json:"duration_hours" db:"duration_hours"`
	Created       int64  `json:"created" db:"created"`
	Updated       int64  `json:"updated" db:"updated"`
}

type Enrollment struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	CourseID    string `json:"course_id" db:"course_id"`
	EnrolledAt  int64  `json:"enrolled_at" db:"enrolled_at"`
	CompletedAt *int64 `json:"completed_at,omitempty" db:"completed_at"`
	QuizScore   *int   `json:"quiz_score,omitempty" db:"quiz_score"`
}

type QuizQuestion struct {
	ID            string `json:"id" db:"id"`
	CourseID      string `json:"course_id" db:"course_id"`
	QuestionText  string `json:"question_text" db:"question_text"`
	OptionA       string `json:"option_a" db:"option_a"`
	OptionB       string `json:"option_b" db:"option_b"`
	OptionC       string `json:"option_c" db:"option_c"`
	OptionD       string `json:"option_d" db:"option_d"`
	CorrectAnswer string `json:"correct_answer,omitempty" db:"correct_answer"`
	Created       int64  `json:"created" db:"created"`
}

type QuizAttempt struct {
	ID             string `json:"id" db:"id"`
	EnrollmentID   string `json:"enrollment_id" db:"enrollment_id"`
	QuestionID     string `json:"question_id" db:"question_id"`
	SelectedAnswer string `json:"selected_answer" db:"selected_answer"`
	IsCorrect      bool   `json:"is_correct" db:"is_correct"`
	AttemptedAt    int64  `json:"attempted_at" db:"attempted_at"`
}

type InterviewSession struct {
	ID             string  `json:"id" db:"id"`
	CandidateName  string  `json:"candidate_name" db:"candidate_name"`
	CandidateEmail string  `json:"candidate_email" db:"candidate_email"`
	Position       string  `json:"position" db:"position"`
	Department     string  `json:"department" db:"department"`
	Status         string  `json:"status" db:"status"`
	OverallScore   *int    `json:"overall_score,omitempty" db:"overall_score"`
	Recommendation *string `json:"recommendation,omitempty" db:"recommendation"`
	CreatedBy      string  `json:"created_by" db:"created_by"`
	Created        int64   `json:"created" db:"created"`
	CompletedAt    *int64  `json:"completed_at,omitempty" db:"completed_at"`
}

type InterviewQuestion struct {
	ID               string   `json:"id" db:"id"`
	SessionID        string   `json:"session_id" db:"session_id"`
	QuestionText     string   `json:"question_text" db:"question_text"`
	QuestionCategory string   `json:"question_category" db:"question_category"`
	ExpectedPoints   []string `json:"expected_points" db:"expected_points"`
	Position         int      `json:"position" db:"position"`
	Created          int64    `json:"created" db:"created"`
}

type InterviewResponse struct {
	ID           string  `json:"id" db:"id"`
	QuestionID   string  `json:"question_id" db:"question_id"`
	ResponseText string  `json:"response_text" db:"response_text"`
	Score        *int    `json:"score,omitempty" db:"score"`
	Feedback     *string `json:"feedback,omitempty" db:"feedback"`
	Created      int64   `json:"created" db:"created"`
}
