package repository

import (
	"context"
	"strings"

	"coderr/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithProfile inserts the identity and its profile in one transaction.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error {
	u.Email = normalizeEmail(u.Email)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p.UserID = u.ID
		return tx.Omit("User").Create(p).Error
	})
	return translate(err, "create user with profile")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "get user by id")
	}
	return &u, nil
}

// GetByUsername matches case-insensitively.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("username_key = ?", domain.UsernameKey(username)).
		First(&u).Error
	if err != nil {
		return nil, translate(err, "get user by username")
	}
	return &u, nil
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username_key = ?", domain.UsernameKey(username)).
		Count(&n).Error
	return n > 0, translate(err, "check username")
}

// EmailTaken reports whether another user already owns email. exceptID 0 checks all users.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", normalizeEmail(email))
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&n).Error
	return n > 0, translate(err, "check email")
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, translate(err, "check user exists")
}

// ResolveCaller loads the identity and its role with a single query.
func (r *UserRepository) ResolveCaller(ctx context.Context, userID int64) (*domain.Caller, error) {
	var row struct {
		ID       int64
		Username string
		IsAdmin  bool
		Type     *string
	}

	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.is_admin, profiles.type").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, translate(err, "resolve caller")
	}

	role := domain.RoleCustomer
	if row.Type != nil {
		role = domain.Role(*row.Type)
	}

	return &domain.Caller{
		UserID:   row.ID,
		Username: row.Username,
		Role:     role,
		IsAdmin:  row.IsAdmin,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
