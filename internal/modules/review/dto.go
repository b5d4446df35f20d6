package review

import (
	"coderr/internal/domain"
	"coderr/internal/pkg/response"
)

type CreateReviewRequest struct {
	BusinessUser *int64 `json:"business_user"`
	Rating       *int   `json:"rating"`
	Description  string `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

type ReviewResponse struct {
	ID           int64              `json:"id"`
	BusinessUser int64              `json:"business_user"`
	Reviewer     int64              `json:"reviewer"`
	Rating       int                `json:"rating"`
	Description  string             `json:"description"`
	CreatedAt    response.Timestamp `json:"created_at"`
	UpdatedAt    response.Timestamp `json:"updated_at"`
}

func toResponse(rv *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:           rv.ID,
		BusinessUser: rv.BusinessUserID,
		Reviewer:     rv.ReviewerID,
		Rating:       rv.Rating,
		Description:  rv.Description,
		CreatedAt:    response.Time(rv.CreatedAt),
		UpdatedAt:    response.Time(rv.UpdatedAt),
	}
}
