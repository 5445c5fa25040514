package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	dbfs "github.com/staffhub/staffhub/db"
	"github.com/staffhub/staffhub/internal/config"
	"github.com/staffhub/staffhub/internal/db"
	"github.com/staffhub/staffhub/internal/repository/sqlite"
	"github.com/staffhub/staffhub/pkg/models"
)

// Initializes the database: migrations plus a bootstrap admin account and a
// sample course with a small quiz, so a fresh install is usable immediately.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)

	adminEmail := getEnv("STAFFHUB_ADMIN_EMAIL", "admin@staffhub.local")
	adminPassword := getEnv("STAFFHUB_ADMIN_PASSWORD", "changeme-now")

	existing, err := repo.GetUserByEmail(ctx, adminEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed check error: %v\n", err)
		os.Exit(1)
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
		userID, err := repo.CreateUser(ctx, &models.User{Email: adminEmail, PasswordHash: string(hash)})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed admin error: %v\n", err)
			os.Exit(1)
		}
		if err := repo.CreateProfile(ctx, &models.Profile{ID: userID, FullName: "Administrator", Email: adminEmail}); err != nil {
			fmt.Fprintf(os.Stderr, "Seed admin profile error: %v\n", err)
			os.Exit(1)
		}
		if err := repo.AssignRole(ctx, userID, models.RoleAdmin); err != nil {
			fmt.Fprintf(os.Stderr, "Seed admin role error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded admin account %s\n", adminEmail)
	}

	courses, err := repo.ListCourses(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed check error: %v\n", err)
		os.Exit(1)
	}
	if len(courses) == 0 {
		course := &models.Course{
			Title:         "Workplace Security Basics",
			Description:   "Password hygiene, phishing awareness and device policy.",
			Department:    "Operations",
			DurationHours: 2,
		}
		courseID, err := repo.CreateCourse(ctx, course)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed course error: %v\n", err)
			os.Exit(1)
		}
		questions := []models.QuizQuestion{
			{
				CourseID:      courseID,
				QuestionText:  "What should you do with a suspicious email attachment?",
				OptionA:       "Open it to see what it is",
				OptionB:       "Forward it to a colleague",
				OptionC:       "Report it without opening",
				OptionD:       "Delete your mailbox",
				CorrectAnswer: "Report it without opening",
			},
			{
				CourseID:      courseID,
				QuestionText:  "How often should passwords be reused across systems?",
				OptionA:       "Always",
				OptionB:       "Never",
				OptionC:       "Only for internal tools",
				OptionD:       "Once per year",
				CorrectAnswer: "Never",
			},
		}
		for i := range questions {
			if _, err := repo.CreateQuizQuestion(ctx, &questions[i]); err != nil {
				fmt.Fprintf(os.Stderr, "Seed quiz error: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Println("Seeded sample course and quiz")
	}

	fmt.Println("Database initialized successfully.")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
