package offer

import (
	"context"
	"mime/multipart"

	"coderr/internal/domain"
	"coderr/internal/repository"
)

type OfferRepository interface {
	List(ctx context.Context, f repository.OfferFilters) ([]domain.OfferSummary, int64, error)
	GetSummary(ctx context.Context, id int64) (*domain.OfferSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	Create(ctx context.Context, o *domain.Offer) error
	Update(ctx context.Context, offerID int64, upd domain.OfferUpdate) error
	Delete(ctx context.Context, id int64) error
	GetDetail(ctx context.Context, id int64) (*domain.OfferDetail, error)
}

type MediaStore interface {
	Save(folder string, fh *multipart.FileHeader) (string, error)
	Remove(name string)
	URL(name *string) *string
}
