package repository

import (
	"context"
	"testing"

	"coderr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	u := &domain.User{Username: "Anna", Email: " Anna@Example.COM ", PasswordHash: "h"}
	p := &domain.Profile{Type: domain.RoleBusiness}
	require.NoError(t, users.CreateWithProfile(ctx, u, p))
	assert.Equal(t, "anna@example.com", u.Email)

	got, err := profiles.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBusiness, got.Type)
	assert.Equal(t, "Anna", got.User.Username)
	assert.Equal(t, "", got.Location)
	assert.Nil(t, got.File)

	byName, err := users.GetByUsername(ctx, "ANNA")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	taken, err := users.UsernameTaken(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailTaken(ctx, "ANNA@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailTaken(ctx, "anna@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_DuplicateRollsBackProfile(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "anna", domain.RoleCustomer)

	err := users.CreateWithProfile(ctx,
		&domain.User{Username: "anna", Email: "other@example.com", PasswordHash: "h"},
		&domain.Profile{Type: domain.RoleCustomer},
	)
	assert.ErrorIs(t, err, ErrDuplicate)

	var n int64
	db.Model(&domain.Profile{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_UsernameUniqueIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	kevin := &domain.User{Username: "Kevin", Email: "kevin@example.com", PasswordHash: "h"}
	require.NoError(t, users.CreateWithProfile(ctx, kevin, &domain.Profile{Type: domain.RoleCustomer}))
	assert.Equal(t, "kevin", kevin.UsernameKey)

	err := users.CreateWithProfile(ctx,
		&domain.User{Username: "kevin", Email: "other@example.com", PasswordHash: "h"},
		&domain.Profile{Type: domain.RoleCustomer},
	)
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := users.GetByUsername(ctx, " KEVIN ")
	require.NoError(t, err)
	assert.Equal(t, "Kevin", got.Username)
}

func TestUserRepository_ResolveCaller(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	biz := seedUser(t, db, "biz", domain.RoleBusiness)
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", biz.ID).Update("is_admin", true).Error)

	caller, err := users.ResolveCaller(ctx, biz.ID)
	require.NoError(t, err)
	assert.Equal(t, "biz", caller.Username)
	assert.Equal(t, domain.RoleBusiness, caller.Role)
	assert.True(t, caller.IsAdmin)
	assert.True(t, caller.IsBusiness())

	_, err = users.ResolveCaller(ctx, biz.ID+50)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepository_UpdateAndList(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	ctx := context.Background()

	b1 := seedUser(t, db, "b1", domain.RoleBusiness)
	seedUser(t, db, "b2", domain.RoleBusiness)
	seedUser(t, db, "c1", domain.RoleCustomer)

	file := "profiles/x.png"
	require.NoError(t, profiles.Update(ctx, b1.ID, domain.ProfileUpdate{
		Location: ptr("Berlin"),
		Email:    ptr("NEW@b1.io"),
		File:     &file,
	}))

	got, err := profiles.GetByUserID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, "new@b1.io", got.User.Email)
	require.NotNil(t, got.File)
	assert.Equal(t, file, *got.File)

	list, err := profiles.ListByType(ctx, domain.RoleBusiness)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	n, err := profiles.CountByType(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ok, err := profiles.IsBusiness(ctx, b1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, profiles.Update(ctx, 999, domain.ProfileUpdate{Tel: ptr("1")}), ErrNotFound)
}
