package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gutvbooker/internal/database"
	"gutvbooker/internal/domain"
	"gutvbooker/internal/repository"
)

func newService(t *testing.T) (*Service, *repository.UserRepository) {
	svc, repo, _ := newServiceDB(t)
	return svc, repo
}

func newServiceDB(t *testing.T) (*Service, *repository.UserRepository, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := repository.NewUserRepository(db)
	svc := NewService(repo)
	svc.hashCost = bcrypt.MinCost
	return svc, repo, db
}

func TestSetBannedAndRonin(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	admin := &domain.User{Login: "admin", Role: domain.RoleAdmin}
	user := &domain.User{Login: "user"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, user))

	u, err := svc.SetBanned(ctx, admin.ID, user.ID, true)
	require.NoError(t, err)
	assert.True(t, u.Banned)

	u, err = svc.SetBanned(ctx, admin.ID, user.ID, false)
	require.NoError(t, err)
	assert.False(t, u.Banned)

	_, err = svc.SetBanned(ctx, admin.ID, admin.ID, true)
	assert.ErrorIs(t, err, ErrSelfAction)

	u, err = svc.SetRonin(ctx, admin.ID, user.ID, true)
	require.NoError(t, err)
	assert.True(t, u.HasTier(domain.TierRonin))

	_, err = svc.SetRonin(ctx, admin.ID, 404, true)
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestPromoteOsnova(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, repo.Create(ctx, &domain.User{Login: "a", JoinDate: now.AddDate(-1, 0, -1)}))
	require.NoError(t, repo.Create(ctx, &domain.User{Login: "b", JoinDate: now.AddDate(0, -11, 0)}))

	n, err := svc.PromoteOsnova(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCreateUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.CreateUser(ctx, 1, CreateUserRequest{
		Login: " Masha ", Password: "s3cret-pass", Name: "Masha", TelegramID: "@masha",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Masha", u.Login)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, now, u.JoinDate)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))

	stored, err := repo.GetByLogin(ctx, "masha")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)

	joined := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	veteran, err := svc.CreateUser(ctx, 1, CreateUserRequest{
		Login: "oleg", Password: "password1", Name: "Oleg", JoinDate: joined, Ronin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, joined, veteran.JoinDate)
	assert.True(t, veteran.HasTier(domain.TierRonin))

	_, err = svc.CreateUser(ctx, 1, CreateUserRequest{Login: "MASHA", Password: "another-pass", Name: "Dup"})
	assert.ErrorIs(t, err, ErrLoginTaken)

	_, err = svc.CreateUser(ctx, 1, CreateUserRequest{Login: "x", Password: "short", Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUser(ctx, 1, CreateUserRequest{Login: "   ", Password: "long-enough", Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchByName(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	for _, u := range []*domain.User{
		{Login: "a", Name: "Ivan Petrov"},
		{Login: "b", Name: "Petr Ivanov"},
		{Login: "c", Name: "Anna"},
	} {
		require.NoError(t, repo.Create(ctx, u))
	}

	found, err := svc.SearchByName(ctx, "IVAN")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Ivan Petrov", found[0].Name)

	found, err = svc.SearchByName(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	found, err = svc.SearchByName(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSetRole(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	admin := &domain.User{Login: "admin", Role: domain.RoleAdmin}
	user := &domain.User{Login: "user"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, user))

	u, err := svc.SetRole(ctx, admin.ID, user.ID, "admin")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	u, err = svc.SetRole(ctx, admin.ID, user.ID, "User")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)

	_, err = svc.SetRole(ctx, admin.ID, admin.ID, "user")
	assert.ErrorIs(t, err, ErrSelfAction)

	_, err = svc.SetRole(ctx, admin.ID, user.ID, "owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetRole(ctx, admin.ID, 404, "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, repo, db := newServiceDB(t)
	ctx := context.Background()

	admin := &domain.User{Login: "admin", Role: domain.RoleAdmin}
	user := &domain.User{Login: "user"}
	other := &domain.User{Login: "other"}
	for _, u := range []*domain.User{admin, user, other} {
		require.NoError(t, repo.Create(ctx, u))
	}

	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, owner := range []int64{user.ID, other.ID} {
		require.NoError(t, db.Create(&domain.Booking{
			UserID: owner, Status: domain.BookingPending, StartDate: day, EndDate: day.AddDate(0, 0, 1),
			Items: []domain.BookingItem{{EquipmentItemID: 1, StartDate: day, EndDate: day.AddDate(0, 0, 1)}},
		}).Error)
	}

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, user.ID))

	_, err := svc.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var bookings, items int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&bookings).Error)
	require.NoError(t, db.Model(&domain.BookingItem{}).Count(&items).Error)
	assert.Equal(t, int64(1), bookings)
	assert.Equal(t, int64(1), items)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, user.ID), ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin.ID), ErrSelfAction)
}
