package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

// Roles
const (
	// Admin
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"

	// Teacher
	RoleTeacher = "teacher:"

	// Student
	RoleStudent = "student:"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminOwner, RoleAdminPrincipal}
	TeacherRoles = []string{RoleTeacher}
	StudentRoles = []string{RoleStudent}
	AllRoles     = getAllRoles()
)

func getAllRoles() []string {
	all := make([]string, 0, 5)
	all = append(all, AdminRoles...)
	all = append(all, TeacherRoles...)
	all = append(all, StudentRoles...)
	return all
}

// IsKnownRole reports whether role is one of AllRoles.
func IsKnownRole(role string) bool {
	for _, known := range AllRoles {
		if role == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u *User) IsTeacher() bool {
	return u.RoleStartsWith(RoleTeacher)
}

func (u *User) IsStudent() bool {
	return u.RoleStartsWith(RoleStudent)
}

// PortalRole is the portal the account lands on: admin over teacher over student.
func (u *User) PortalRole() (portal.Role, error) {
	switch {
	case u.IsAdmin():
		return portal.RoleAdmin, nil
	case u.IsTeacher():
		return portal.RoleTeacher, nil
	case u.IsStudent():
		return portal.RoleStudent, nil
	}
	return "", portal.ErrInvalidRole
}

// HashPassword returns the bcrypt hash of a password.
func HashPassword(pwd string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
}

// NewUser contains information needed to create a new User from a configured account.
type NewUser struct {
	Name         string   `json:"name" validate:"required"`
	Username     string   `json:"username" validate:"required,alphanum_"`
	Email        string   `json:"email" validate:"omitempty,email"`
	PasswordHash string   `json:"password_hash" validate:"required"`
	Roles        []string `json:"roles" validate:"required,min=1,allroles"`
}

func NewUserFromAccount(acc core.AccountConfig) NewUser {
	return NewUser{
		Name:         core.CleanString(acc.Name),
		Username:     core.CleanString(acc.Username, true /* lower */),
		Email:        core.CleanString(acc.Email, true /* lower */),
		PasswordHash: strings.TrimSpace(acc.PasswordHash),
		Roles:        acc.Roles,
	}
}
