package dto

import (
	"github.com/pf-responses/respuestas-api/internal/models"
)

// ProfileDTO represents a user's personal data in API responses
type ProfileDTO struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
}

// UserDTO represents a user in API responses. The password hash never leaves
// the service.
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"nombre_usuario"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"tipo_usuario"`
	IsActive bool            `json:"is_active"`
	IsStaff  bool            `json:"is_staff"`
	Profile  *ProfileDTO     `json:"persona"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
	}

	// Include profile if preloaded
	if user.Profile != nil {
		dto.Profile = &ProfileDTO{
			FirstName: user.Profile.FirstName,
			LastName:  user.Profile.LastName,
		}
	}

	return dto
}
