package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/staffhub/staffhub/internal/config"
	"github.com/staffhub/staffhub/internal/db"
	"github.com/staffhub/staffhub/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB, engine InterviewEngine) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// r.Use middleware never runs for unmatched requests, so OPTIONS
	// preflights on method-restricted routes would miss the CORS headers
	// without these.
	r.NotFoundHandler = CORSMiddleware(http.NotFoundHandler())
	r.MethodNotAllowedHandler = CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}))

	// Repository
	repo := sqlite.New(db, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	employeesHandler := NewEmployeesHandler(repo, repo, repo)
	attendanceHandler := NewAttendanceHandler(repo)
	coursesHandler := NewCoursesHandler(repo, repo, repo)
	interviewsHandler := NewInterviewsHandler(engine, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Profile and attendance
	apiV1.HandleFunc("/profile", employeesHandler.GetMyProfile).Methods("GET")
	apiV1.HandleFunc("/attendance/checkin", attendanceHandler.CheckIn).Methods("POST")
	apiV1.HandleFunc("/attendance/checkout", attendanceHandler.CheckOut).Methods("POST")
	apiV1.HandleFunc("/attendance/today", attendanceHandler.Today).Methods("GET")
	apiV1.HandleFunc("/attendance", attendanceHandler.History).Methods("GET")

	// Courses and quizzes
	apiV1.HandleFunc("/courses", coursesHandler.ListCourses).Methods("GET")
	apiV1.HandleFunc("/courses/{id}/enroll", coursesHandler.Enroll).Methods("POST")
	apiV1.HandleFunc("/courses/{id}/quiz", coursesHandler.GetQuiz).Methods("GET")
	apiV1.HandleFunc("/courses/{id}/quiz", coursesHandler.SubmitQuiz).Methods("POST")
	apiV1.HandleFunc("/enrollments", coursesHandler.ListMyEnrollments).Methods("GET")

	// Admin routes
	admin := apiV1.NewRoute().Subrouter()
	admin.Use(RequireAdmin)
	admin.HandleFunc("/employees", employeesHandler.ListEmployees).Methods("GET")
	admin.HandleFunc("/employees", employeesHandler.CreateEmployee).Methods("POST")
	admin.HandleFunc("/employees/{id}", employeesHandler.UpdateEmployee).Methods("PUT")
	admin.HandleFunc("/employees/{id}", employeesHandler.DeleteEmployee).Methods("DELETE")
	admin.HandleFunc("/admin/attendance", attendanceHandler.Overview).Methods("GET")
	admin.HandleFunc("/courses", coursesHandler.CreateCourse).Methods("POST")
	admin.HandleFunc("/courses/{id}/quiz/questions", coursesHandler.CreateQuizQuestion).Methods("POST")
	admin.HandleFunc("/interviews/ai", interviewsHandler.Dispatch).Methods("POST")
	admin.HandleFunc("/interviews", interviewsHandler.ListSessions).Methods("GET")
	admin.HandleFunc("/interviews/{id}", interviewsHandler.GetSession).Methods("GET")

	return r
}
