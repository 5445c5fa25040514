package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/staffhub/pkg/models"
	"github.com/staffhub/staffhub/pkg/repository"
)

type EmployeesHandler struct {
	userRepo    repository.UserRepo
	profileRepo repository.ProfileRepo
	roleRepo    repository.RoleRepo
}

func NewEmployeesHandler(ur repository.UserRepo, pr repository.ProfileRepo, rr repository.RoleRepo) *EmployeesHandler {
	return &EmployeesHandler{userRepo: ur, profileRepo: pr, roleRepo: rr}
}

// GetMyProfile returns the caller's own profile row.
func (h *EmployeesHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	s, _ := SessionFromContext(r.Context())
	p, err := h.profileRepo.GetProfile(r.Context(), s.UserID)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

// ListEmployees returns all profiles sorted by full name.
func (h *EmployeesHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.ListProfiles(r.Context())
	if err != nil {
		http.Error(w, "failed to list employees", http.StatusInternalServerError)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	writeJSON(w, profiles, http.StatusOK)
}

type createEmployeeRequest struct {
	FullName   string   `json:"full_name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=8"`
	Department *string  `json:"department,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	Role       string   `json:"role,omitempty"`
}

func (h *EmployeesHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
		return
	}
	if req.Department != nil && !models.ValidDepartment(*req.Department) {
		http.Error(w, "unknown department", http.StatusBadRequest)
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleAdmin {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	user := models.User{Email: req.Email, PasswordHash: string(hash)}
	userID, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	profile := models.Profile{
		ID:         userID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Salary:     req.Salary,
	}
	if err := h.profileRepo.CreateProfile(ctx, &profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.roleRepo.AssignRole(ctx, userID, role); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, profile, http.StatusCreated)
}

type updateEmployeeRequest struct {
	FullName   string   `json:"full_name" validate:"required"`
	Department *string  `json:"department,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
}

func (h *EmployeesHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "missing or invalid fields", http.StatusBadRequest)
		return
	}
	if req.Department != nil && !models.ValidDepartment(*req.Department) {
		http.Error(w, "unknown department", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	p, err := h.profileRepo.GetProfile(ctx, id)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	p.FullName = req.FullName
	p.Department = req.Department
	p.Salary = req.Salary
	if err := h.profileRepo.UpdateProfile(ctx, p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

// DeleteEmployee removes the user row; profile, roles, attendance and
// enrollments follow via FK cascade.
func (h *EmployeesHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx := r.Context()
	u, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil {
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	if err := h.userRepo.DeleteUser(ctx, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
