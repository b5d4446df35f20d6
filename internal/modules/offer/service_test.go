package offer

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/url"
	"testing"
	"time"

	"coderr/internal/domain"
	"coderr/internal/pkg/validator"
	"coderr/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOffers struct {
	mock.Mock
}

func (m *mockOffers) List(ctx context.Context, f repository.OfferFilters) ([]domain.OfferSummary, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.OfferSummary), args.Get(1).(int64), args.Error(2)
}

func (m *mockOffers) GetSummary(ctx context.Context, id int64) (*domain.OfferSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OfferSummary), args.Error(1)
}

func (m *mockOffers) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *mockOffers) Create(ctx context.Context, o *domain.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOffers) Update(ctx context.Context, offerID int64, upd domain.OfferUpdate) error {
	return m.Called(ctx, offerID, upd).Error(0)
}

func (m *mockOffers) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOffers) GetDetail(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OfferDetail), args.Error(1)
}

type nopMedia struct{}

func (nopMedia) Save(folder string, fh *multipart.FileHeader) (string, error) {
	return folder + "/" + fh.Filename, nil
}

func (nopMedia) Remove(string) {}

func (nopMedia) URL(name *string) *string { return name }

func ptr[T any](v T) *T { return &v }

func tierRequest(t domain.OfferType, price string) DetailRequest {
	return DetailRequest{
		Title:              string(t) + " package",
		Revisions:          ptr(1),
		DeliveryTimeInDays: ptr(5),
		Price:              NewPrice(decimal.RequireFromString(price)),
		Features:           []string{"logo"},
		OfferType:          t,
	}
}

func validCreate() CreateOfferRequest {
	return CreateOfferRequest{
		Title:       "Logo design",
		Description: "Clean logos",
		Details: []DetailRequest{
			tierRequest(domain.OfferBasic, "100"),
			tierRequest(domain.OfferStandard, "200.5"),
			tierRequest(domain.OfferPremium, "500.00"),
		},
	}
}

func fieldErrors(t *testing.T, err error) validator.FieldErrors {
	t.Helper()
	var fields validator.FieldErrors
	require.True(t, errors.As(err, &fields), "expected field errors, got %v", err)
	return fields
}

func TestParseFilters(t *testing.T) {
	f, err := ParseFilters(url.Values{
		"creator_id":        {"7"},
		"min_price":         {"150"},
		"max_delivery_time": {"3"},
		"search":            {"logo"},
		"ordering":          {"min_price"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), *f.CreatorID)
	assert.True(t, decimal.NewFromInt(150).Equal(*f.MinPrice))
	assert.Equal(t, 3, *f.MaxDeliveryTime)
	assert.Equal(t, "logo", f.Search)
	assert.Equal(t, "min_price", f.Ordering)

	f, err = ParseFilters(url.Values{"ordering": {"title"}})
	require.NoError(t, err)
	assert.Empty(t, f.Ordering)

	_, err = ParseFilters(url.Values{"min_price": {"abc"}, "max_delivery_time": {"1.5"}})
	fields := fieldErrors(t, err)
	assert.Equal(t, msgInvalidValue, fields["min_price"])
	assert.Equal(t, msgInvalidValue, fields["max_delivery_time"])
}

func TestService_Create_RequiresBusiness(t *testing.T) {
	svc := NewService(new(mockOffers), nopMedia{})

	_, err := svc.Create(context.Background(), &domain.Caller{UserID: 1, Role: domain.RoleCustomer}, validCreate(), nil)
	assert.ErrorIs(t, err, ErrNotBusiness)
}

func TestService_Create_ValidatesTiers(t *testing.T) {
	svc := NewService(new(mockOffers), nopMedia{})
	biz := &domain.Caller{UserID: 1, Role: domain.RoleBusiness}

	req := validCreate()
	req.Details = req.Details[:2]
	_, err := svc.Create(context.Background(), biz, req, nil)
	assert.Equal(t, msgDetailCount, fieldErrors(t, err)["details"])

	req = validCreate()
	req.Details[2].OfferType = domain.OfferBasic
	_, err = svc.Create(context.Background(), biz, req, nil)
	assert.Equal(t, msgDuplicateTypes, fieldErrors(t, err)["details"])

	req = validCreate()
	req.Details[1].Price = NewPrice(decimal.RequireFromString("10.123"))
	req.Details[2].Price = NewPrice(decimal.RequireFromString("-1"))
	_, err = svc.Create(context.Background(), biz, req, nil)
	fields := fieldErrors(t, err)
	assert.Equal(t, msgDecimalPlaces, fields["details[1].price"])
	assert.Equal(t, msgNegative, fields["details[2].price"])

	req = validCreate()
	req.Details[0].Revisions = nil
	_, err = svc.Create(context.Background(), biz, req, nil)
	assert.Contains(t, fieldErrors(t, err), "details[0].revisions")
}

func TestService_Create_Persists(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	offers := new(mockOffers)
	offers.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Offer) bool {
		return o.UserID == 1 && len(o.Details) == 3 &&
			o.Details[1].Price.StringFixed(2) == "200.50" &&
			o.CreatedAt.Equal(now) && o.Image != nil && *o.Image == "offers/logo.png"
	})).Return(nil)

	svc := NewService(offers, nopMedia{})
	svc.SetClock(func() time.Time { return now })

	_, err := svc.Create(context.Background(), &domain.Caller{UserID: 1, Role: domain.RoleBusiness},
		validCreate(), &multipart.FileHeader{Filename: "logo.png", Size: 4})
	require.NoError(t, err)
	offers.AssertExpectations(t)
}

func existingOffer() *domain.Offer {
	return &domain.Offer{
		ID:     3,
		UserID: 1,
		Details: []domain.OfferDetail{
			{ID: 10, OfferType: domain.OfferBasic},
			{ID: 11, OfferType: domain.OfferStandard},
			{ID: 12, OfferType: domain.OfferPremium},
		},
	}
}

func TestService_Update_Ownership(t *testing.T) {
	offers := new(mockOffers)
	offers.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
	offers.On("GetByID", mock.Anything, int64(3)).Return(existingOffer(), nil)
	svc := NewService(offers, nopMedia{})

	_, err := svc.Update(context.Background(), &domain.Caller{UserID: 2}, 404, UpdateOfferRequest{}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(context.Background(), &domain.Caller{UserID: 2}, 3, UpdateOfferRequest{Title: ptr("x")}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), &domain.Caller{UserID: 2}, 3)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Update_TierRules(t *testing.T) {
	offers := new(mockOffers)
	offers.On("GetByID", mock.Anything, int64(3)).Return(existingOffer(), nil)
	svc := NewService(offers, nopMedia{})
	owner := &domain.Caller{UserID: 1, Role: domain.RoleBusiness}

	cases := []struct {
		name    string
		details []DetailPatch
		want    string
	}{
		{"missing type", []DetailPatch{{Title: ptr("x")}}, msgOfferTypeRequired},
		{"unknown type", []DetailPatch{{OfferType: "gold", Title: ptr("x")}}, msgUnknownOfferType},
		{"duplicate type", []DetailPatch{{OfferType: domain.OfferBasic}, {OfferType: domain.OfferBasic}}, msgDuplicateTypes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), owner, 3, UpdateOfferRequest{Details: tc.details}, nil)
			assert.Equal(t, tc.want, fieldErrors(t, err)["details"])
		})
	}
	offers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_AppliesPatch(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	offers := new(mockOffers)
	offers.On("GetByID", mock.Anything, int64(3)).Return(existingOffer(), nil)
	offers.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(u domain.OfferUpdate) bool {
		if len(u.Details) != 1 {
			return false
		}
		d := u.Details[0]
		return u.UpdatedAt.Equal(now) && d.OfferType == domain.OfferPremium &&
			d.Price.StringFixed(2) == "650.00" && d.FeaturesSet && len(d.Features) == 0
	})).Return(nil)

	svc := NewService(offers, nopMedia{})
	svc.SetClock(func() time.Time { return now })

	_, err := svc.Update(context.Background(), &domain.Caller{UserID: 1}, 3, UpdateOfferRequest{
		Details: []DetailPatch{{
			OfferType: domain.OfferPremium,
			Price:     NewPrice(decimal.NewFromInt(650)),
			Features:  &[]string{},
		}},
	}, nil)
	require.NoError(t, err)
	offers.AssertExpectations(t)
}

func TestCheckPrice(t *testing.T) {
	assert.Empty(t, checkPrice(decimal.RequireFromString("0")))
	assert.Empty(t, checkPrice(decimal.RequireFromString("99999999.99")))
	assert.Empty(t, checkPrice(decimal.RequireFromString("12.50")))
	assert.Equal(t, msgDigits, checkPrice(decimal.RequireFromString("100000000")))
	assert.Equal(t, msgDecimalPlaces, checkPrice(decimal.RequireFromString("1.005")))
	assert.Equal(t, msgNegative, checkPrice(decimal.RequireFromString("-0.01")))
}

func TestPrice_UnmarshalJSON(t *testing.T) {
	var req DetailRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.50"}`), &req))
	assert.Equal(t, "12.50", req.Price.StringFixed(2))

	require.NoError(t, json.Unmarshal([]byte(`{"price":200}`), &req))
	assert.Equal(t, "200.00", req.Price.StringFixed(2))

	err := json.Unmarshal([]byte(`{"details":[{"price":"abc"}]}`), &CreateOfferRequest{})
	fields, ok := validator.BindError(err)
	require.True(t, ok, "%v", err)
	for field := range fields {
		assert.Contains(t, field, "price")
	}
}
