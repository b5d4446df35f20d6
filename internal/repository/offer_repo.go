package repository

import (
	"context"
	"strings"

	"coderr/internal/domain"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// minPriceExpr is the single definition of an offer's minimum tier price.
// Projection, filter and ordering all use it.
const minPriceExpr = "COALESCE((SELECT MIN(od.price) FROM offer_details od WHERE od.offer_id = offers.id), 0)"

const minDeliveryExpr = "COALESCE((SELECT MIN(od.delivery_time_in_days) FROM offer_details od WHERE od.offer_id = offers.id), 0)"

var offerOrderings = map[string]string{
	"created_at":  "offers.created_at ASC, offers.id ASC",
	"-created_at": "offers.created_at DESC, offers.id DESC",
	"updated_at":  "offers.updated_at ASC, offers.id ASC",
	"-updated_at": "offers.updated_at DESC, offers.id DESC",
	"min_price":   minPriceExpr + " ASC, offers.id ASC",
	"-min_price":  minPriceExpr + " DESC, offers.id DESC",
}

const defaultOfferOrdering = "-created_at"

type OfferFilters struct {
	CreatorID       *int64
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Limit           int
	Offset          int
}

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// IsOfferOrdering reports whether ordering is one of the accepted sort keys.
func IsOfferOrdering(ordering string) bool {
	_, ok := offerOrderings[ordering]
	return ok
}

func (r *OfferRepository) filtered(ctx context.Context, f OfferFilters) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Offer{})

	if f.CreatorID != nil {
		q = q.Where("offers.user_id = ?", *f.CreatorID)
	}
	if f.MinPrice != nil {
		q = q.Where(minPriceExpr+" >= CAST(? AS NUMERIC)", f.MinPrice.String())
	}
	if f.MaxDeliveryTime != nil {
		q = q.Where("EXISTS (SELECT 1 FROM offer_details od WHERE od.offer_id = offers.id AND od.delivery_time_in_days <= ?)", *f.MaxDeliveryTime)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where("(LOWER(offers.title) LIKE ? ESCAPE '\\' OR LOWER(offers.description) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	return q
}

// List returns one page of offer summaries plus the total number of matches.
func (r *OfferRepository) List(ctx context.Context, f OfferFilters) ([]domain.OfferSummary, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count offers")
	}
	if total == 0 {
		return []domain.OfferSummary{}, 0, nil
	}

	order, ok := offerOrderings[f.Ordering]
	if !ok {
		order = offerOrderings[defaultOfferOrdering]
	}

	var rows []summaryRow
	q := r.filtered(ctx, f).
		Select("offers.id, " + minPriceExpr + " AS min_price, " + minDeliveryExpr + " AS min_delivery_time").
		Order(order)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, translate(err, "list offers")
	}

	items, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetSummary returns a single offer with its aggregates and owner details.
func (r *OfferRepository) GetSummary(ctx context.Context, id int64) (*domain.OfferSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).Model(&domain.Offer{}).
		Select("offers.id, "+minPriceExpr+" AS min_price, "+minDeliveryExpr+" AS min_delivery_time").
		Where("offers.id = ?", id).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "get offer summary")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrNotFound, "get offer summary")
	}

	items, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

type summaryRow struct {
	ID              int64
	MinPrice        decimal.Decimal
	MinDeliveryTime int
}

// hydrate loads offers, tiers and owners for rows and keeps the row order.
func (r *OfferRepository) hydrate(ctx context.Context, rows []summaryRow) ([]domain.OfferSummary, error) {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var offers []domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("offer_details.id ASC") }).
		Where("id IN ?", ids).
		Find(&offers).Error
	if err != nil {
		return nil, translate(err, "load offers")
	}

	byID := make(map[int64]domain.Offer, len(offers))
	ownerIDs := make([]int64, 0, len(offers))
	seen := map[int64]bool{}
	for _, o := range offers {
		byID[o.ID] = o
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ownerIDs = append(ownerIDs, o.UserID)
		}
	}

	owners, err := r.owners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.OfferSummary, 0, len(rows))
	for _, row := range rows {
		o, ok := byID[row.ID]
		if !ok {
			continue
		}
		out = append(out, domain.OfferSummary{
			Offer:           o,
			MinPrice:        row.MinPrice,
			MinDeliveryTime: row.MinDeliveryTime,
			Owner:           owners[o.UserID],
		})
	}
	return out, nil
}

func (r *OfferRepository) owners(ctx context.Context, ids []int64) (map[int64]domain.OwnerDetails, error) {
	out := make(map[int64]domain.OwnerDetails, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		UserID    int64
		Username  string
		FirstName string
		LastName  string
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.username, COALESCE(profiles.first_name, '') AS first_name, COALESCE(profiles.last_name, '') AS last_name").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "load offer owners")
	}

	for _, row := range rows {
		out[row.UserID] = domain.OwnerDetails{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Username:  row.Username,
		}
	}
	return out, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("offer_details.id ASC") }).
		First(&o, id).Error
	if err != nil {
		return nil, translate(err, "get offer")
	}
	return &o, nil
}

// Create persists the offer and all of its tiers atomically.
func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		for i := range o.Details {
			o.Details[i].OfferID = o.ID
		}
		if len(o.Details) == 0 {
			return nil
		}
		return tx.Create(&o.Details).Error
	})
	return translate(err, "create offer")
}

// Update applies the offer fields and tier updates in one transaction.
// Tiers are matched by type; every type in upd.Details must exist on the offer.
func (r *OfferRepository) Update(ctx context.Context, offerID int64, upd domain.OfferUpdate) error {
	fields := map[string]any{"updated_at": upd.UpdatedAt}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Image != nil {
		fields["image"] = *upd.Image
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Offer{}).Where("id = ?", offerID).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// Тариф ищем по offer_type, не по id
		for _, d := range upd.Details {
			tier := map[string]any{}
			if d.Title != nil {
				tier["title"] = *d.Title
			}
			if d.Revisions != nil {
				tier["revisions"] = *d.Revisions
			}
			if d.DeliveryTimeInDays != nil {
				tier["delivery_time_in_days"] = *d.DeliveryTimeInDays
			}
			if d.Price != nil {
				tier["price"] = *d.Price
			}
			if d.FeaturesSet {
				features := d.Features
				if features == nil {
					features = []string{}
				}
				tier["features"] = datatypes.NewJSONSlice(features)
			}
			if len(tier) == 0 {
				continue
			}

			res := tx.Model(&domain.OfferDetail{}).
				Where("offer_id = ? AND offer_type = ?", offerID, d.OfferType).
				Updates(tier)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound // откатываем всю транзакцию
			}
		}
		return nil
	})
	return translate(err, "update offer")
}

// Delete removes the offer and its tiers. Orders keep their own copies and are untouched.
func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.OfferDetail{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Offer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "delete offer")
}

func (r *OfferRepository) GetDetail(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	var d domain.OfferDetail
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err, "get offer detail")
	}
	return &d, nil
}

func (r *OfferRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Offer{}).Count(&n).Error
	return n, translate(err, "count offers")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
