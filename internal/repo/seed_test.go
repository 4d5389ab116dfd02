package repo

import (
	"context"
	"testing"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedPopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepositories(t)
	seeder := NewSeeder(repos, zerolog.Nop())

	require.NoError(t, seeder.Seed(ctx))

	settings, err := repos.Settings.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, len(defaultSettings))

	users, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	admin, err := repos.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAdmin, admin.Type)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))
}

func TestSeedKeepsExistingSettings(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepositories(t)
	seeder := NewSeeder(repos, zerolog.Nop())

	require.NoError(t, repos.Settings.Set(ctx, models.SettingCurrency, "USD"))
	require.NoError(t, seeder.Seed(ctx))

	value, exists, err := repos.Settings.Get(ctx, models.SettingCurrency)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "USD", value)

	// Absent keys are still filled in.
	_, exists, err = repos.Settings.Get(ctx, models.SettingTheme)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSeedSkipsUsersWhenAnyExist(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepositories(t)
	seeder := NewSeeder(repos, zerolog.Nop())

	_, err := repos.Users.Add(ctx, models.User{Username: "owner", Type: models.UserTypeAdmin})
	require.NoError(t, err)

	require.NoError(t, seeder.Seed(ctx))

	users, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepositories(t)
	seeder := NewSeeder(repos, zerolog.Nop())

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	users, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
