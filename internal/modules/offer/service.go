package offer

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coderr/internal/domain"
	"coderr/internal/pkg/storage"
	"coderr/internal/pkg/validator"
	"coderr/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const mediaFolder = "offers"

// maxPrice is the first value that no longer fits numeric(10,2).
var maxPrice = decimal.New(1, 8)

type Service struct {
	offers OfferRepository
	media  MediaStore
	now    func() time.Time
}

func NewService(offers OfferRepository, media MediaStore) *Service {
	return &Service{
		offers: offers,
		media:  media,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for created_at/updated_at.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// ParseFilters reads the list query. Malformed numeric filters are reported per field;
// an unknown ordering is ignored.
func ParseFilters(q url.Values) (repository.OfferFilters, error) {
	var f repository.OfferFilters
	errs := validator.FieldErrors{}

	if raw := strings.TrimSpace(q.Get("creator_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs["creator_id"] = msgInvalidValue
		} else {
			f.CreatorID = &id
		}
	}
	if raw := strings.TrimSpace(q.Get("min_price")); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			errs["min_price"] = msgInvalidValue
		} else {
			f.MinPrice = &v
		}
	}
	if raw := strings.TrimSpace(q.Get("max_delivery_time")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs["max_delivery_time"] = msgInvalidValue
		} else {
			f.MaxDeliveryTime = &v
		}
	}
	if len(errs) > 0 {
		return f, errs
	}

	f.Search = q.Get("search")
	if o := q.Get("ordering"); repository.IsOfferOrdering(o) {
		f.Ordering = o
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, f repository.OfferFilters) ([]domain.OfferSummary, int64, error) {
	return s.offers.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.OfferSummary, error) {
	o, err := s.offers.GetSummary(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return o, nil
}

func (s *Service) GetDetail(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	d, err := s.offers.GetDetail(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return d, nil
}

// Create stores the offer with its three tiers. Only business callers may create offers.
func (s *Service) Create(ctx context.Context, caller *domain.Caller, req CreateOfferRequest, image *multipart.FileHeader) (*domain.Offer, error) {
	if !caller.IsBusiness() {
		return nil, ErrNotBusiness
	}

	req.Title = strings.TrimSpace(req.Title)
	if errs := validateCreate(req); errs != nil {
		return nil, errs
	}

	now := s.now()
	o := &domain.Offer{
		UserID:      caller.UserID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Details:     make([]domain.OfferDetail, 0, len(req.Details)),
	}
	for _, d := range req.Details {
		features := d.Features
		if features == nil {
			features = []string{}
		}
		o.Details = append(o.Details, domain.OfferDetail{
			Title:              strings.TrimSpace(d.Title),
			Revisions:          *d.Revisions,
			DeliveryTimeInDays: *d.DeliveryTimeInDays,
			Price:              d.Price.Round(2),
			Features:           datatypes.NewJSONSlice(features),
			OfferType:          d.OfferType,
		})
	}

	// Файл сохраняем до записи в БД, при ошибке удаляем
	if image != nil {
		name, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		o.Image = &name
	}

	if err := s.offers.Create(ctx, o); err != nil {
		if o.Image != nil {
			s.media.Remove(*o.Image)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validator.Field("details", msgDuplicateTypes)
		}
		return nil, err
	}
	return o, nil
}

// Update applies a partial update. Missing offers are reported before ownership.
func (s *Service) Update(ctx context.Context, caller *domain.Caller, id int64, req UpdateOfferRequest, image *multipart.FileHeader) (*domain.Offer, error) {
	current, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if caller == nil || caller.UserID != current.UserID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		req.Title = &t
	}
	if errs := validateUpdate(req, current); errs != nil {
		return nil, errs
	}

	upd := domain.OfferUpdate{
		Title:       req.Title,
		Description: req.Description,
		UpdatedAt:   s.now(),
	}
	for _, d := range req.Details {
		du := domain.OfferDetailUpdate{
			OfferType:          d.OfferType,
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
		}
		if d.Price != nil {
			p := d.Price.Round(2)
			du.Price = &p
		}
		if d.Features != nil {
			du.Features = *d.Features
			du.FeaturesSet = true
		}
		upd.Details = append(upd.Details, du)
	}

	if image != nil {
		name, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		upd.Image = &name
	}

	if err := s.offers.Update(ctx, id, upd); err != nil {
		if upd.Image != nil {
			s.media.Remove(*upd.Image)
		}
		return nil, mapNotFound(err)
	}

	// Старую картинку удаляем только после успешного обновления
	if upd.Image != nil && current.Image != nil {
		s.media.Remove(*current.Image)
	}

	updated, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, caller *domain.Caller, id int64) error {
	current, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if caller == nil || caller.UserID != current.UserID {
		return ErrForbidden
	}

	if err := s.offers.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	if current.Image != nil {
		s.media.Remove(*current.Image)
	}
	return nil
}

// ImageURL is the site-relative location of a stored offer image.
func (s *Service) ImageURL(name *string) *string {
	return s.media.URL(name)
}

func (s *Service) saveImage(fh *multipart.FileHeader) (string, error) {
	name, err := s.media.Save(mediaFolder, fh)
	if err != nil {
		if msg, ok := storage.FieldMessage(err); ok {
			return "", validator.Field("image", msg)
		}
		return "", err
	}
	return name, nil
}

func validateCreate(req CreateOfferRequest) error {
	if req.Title == "" {
		return validator.Field("title", "This field is required.")
	}
	if len(req.Details) != len(domain.OfferTypes) {
		return validator.Field("details", msgDetailCount)
	}
	if errs := validator.Validate(req); errs != nil {
		return errs
	}

	errs := validator.FieldErrors{}
	seen := map[domain.OfferType]bool{}
	for i, d := range req.Details {
		if seen[d.OfferType] {
			errs["details"] = msgDuplicateTypes
		}
		seen[d.OfferType] = true
		if strings.TrimSpace(d.Title) == "" {
			errs[detailField(i, "title")] = msgBlank
		}
		if msg := checkPrice(d.Price.Decimal); msg != "" {
			errs[detailField(i, "price")] = msg
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateUpdate requires offer_type on every tier patch and rejects types the offer does not have.
func validateUpdate(req UpdateOfferRequest, current *domain.Offer) error {
	if req.Title != nil && *req.Title == "" {
		return validator.Field("title", msgBlank)
	}
	if errs := validator.Validate(req); errs != nil {
		return errs
	}

	errs := validator.FieldErrors{}
	seen := map[domain.OfferType]bool{}
	for i, d := range req.Details {
		switch {
		case d.OfferType == "":
			errs["details"] = msgOfferTypeRequired
			continue
		case !d.OfferType.Valid() || current.DetailByType(d.OfferType) == nil:
			errs["details"] = msgUnknownOfferType
			continue
		case seen[d.OfferType]:
			errs["details"] = msgDuplicateTypes
			continue
		}
		seen[d.OfferType] = true

		if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
			errs[detailField(i, "title")] = msgBlank
		}
		if d.Price != nil {
			if msg := checkPrice(d.Price.Decimal); msg != "" {
				errs[detailField(i, "price")] = msg
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkPrice(p decimal.Decimal) string {
	switch {
	case p.IsNegative():
		return msgNegative
	case !p.Equal(p.Truncate(2)):
		return msgDecimalPlaces
	case p.GreaterThanOrEqual(maxPrice):
		return msgDigits
	default:
		return ""
	}
}

func detailField(i int, name string) string {
	return fmt.Sprintf("details[%d].%s", i, name)
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
