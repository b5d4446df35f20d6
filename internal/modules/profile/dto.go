package profile

import (
	"coderr/internal/domain"
	"coderr/internal/pkg/response"
)

// UpdateProfileRequest is a partial update; nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" form:"last_name" validate:"omitempty,max=150"`
	Location     *string `json:"location" form:"location" validate:"omitempty,max=255"`
	Tel          *string `json:"tel" form:"tel" validate:"omitempty,max=50"`
	Description  *string `json:"description" form:"description"`
	WorkingHours *string `json:"working_hours" form:"working_hours" validate:"omitempty,max=100"`
	Email        *string `json:"email" form:"email" validate:"omitempty,email,max=254"`
}

type ProfileResponse struct {
	User         int64              `json:"user"`
	Username     string             `json:"username"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	File         *string            `json:"file"`
	Location     string             `json:"location"`
	Tel          string             `json:"tel"`
	Description  string             `json:"description"`
	WorkingHours string             `json:"working_hours"`
	Type         domain.Role        `json:"type"`
	Email        string             `json:"email"`
	CreatedAt    response.Timestamp `json:"created_at"`
}

// ProfileListItem is the public card used by the role-filtered lists.
type ProfileListItem struct {
	User         int64       `json:"user"`
	Username     string      `json:"username"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	File         *string     `json:"file"`
	Location     string      `json:"location"`
	Tel          string      `json:"tel"`
	Description  string      `json:"description"`
	WorkingHours string      `json:"working_hours"`
	Type         domain.Role `json:"type"`
}

func toResponse(p *domain.Profile, file *string) ProfileResponse {
	return ProfileResponse{
		User:         p.UserID,
		Username:     p.User.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         file,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
		Email:        p.User.Email,
		CreatedAt:    response.Time(p.CreatedAt),
	}
}

func toListItem(p *domain.Profile, file *string) ProfileListItem {
	return ProfileListItem{
		User:         p.UserID,
		Username:     p.User.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         file,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
	}
}
