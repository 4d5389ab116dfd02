package repo

import (
	"context"
	"fmt"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var defaultSettings = []models.Setting{
	{Key: models.SettingCompanyName, Value: "شركة الكهرباء المتقدمة"},
	{Key: models.SettingCompanyPhone, Value: "+964770000000"},
	{Key: models.SettingCompanyEmail, Value: "info@electric.com"},
	{Key: models.SettingCurrency, Value: "IQD"},
	{Key: models.SettingTaxRate, Value: 0},
	{Key: models.SettingInvoicePrefix, Value: "INV-"},
	{Key: models.SettingTheme, Value: "dark"},
}

type seedUser struct {
	user     models.User
	password string
}

var defaultUsers = []seedUser{
	{
		user: models.User{
			ID:          1,
			Username:    "admin",
			Type:        models.UserTypeAdmin,
			FullName:    "مدير النظام",
			Email:       "admin@electric.com",
			Phone:       "+9647701234567",
			Role:        "مدير عام",
			Permissions: []string{models.PermissionAll},
		},
		password: "admin123",
	},
	{
		user: models.User{
			ID:          2,
			Username:    "accountant",
			Type:        models.UserTypeAccountant,
			FullName:    "محاسب رئيسي",
			Email:       "accountant@electric.com",
			Phone:       "+9647701234568",
			Role:        "محاسب",
			Permissions: []string{"invoices", "reports", "clients"},
		},
		password: "account123",
	},
	{
		user: models.User{
			ID:          3,
			Username:    "user",
			Type:        models.UserTypeUser,
			FullName:    "مستخدم عادي",
			Email:       "user@electric.com",
			Role:        "مستخدم",
			Permissions: []string{"view"},
		},
		password: "user123",
	},
}

// Seeder populates first-run defaults: the company settings (only keys that
// are absent) and the three stock accounts (only when no user exists yet).
type Seeder struct {
	users    *UserRepository
	settings *SettingsRepository
	log      zerolog.Logger
}

func NewSeeder(repositories *Repositories, log zerolog.Logger) *Seeder {
	return &Seeder{
		users:    repositories.Users,
		settings: repositories.Settings,
		log:      log,
	}
}

func (seeder *Seeder) Seed(ctx context.Context) error {
	if err := seeder.seedSettings(ctx); err != nil {
		return err
	}
	return seeder.seedUsers(ctx)
}

func (seeder *Seeder) seedSettings(ctx context.Context) error {
	for _, setting := range defaultSettings {
		_, exists, err := seeder.settings.Get(ctx, setting.Key)
		if err != nil {
			return fmt.Errorf("check setting %s: %w", setting.Key, err)
		}
		if exists {
			continue
		}
		if err := seeder.settings.Set(ctx, setting.Key, setting.Value); err != nil {
			return fmt.Errorf("seed setting %s: %w", setting.Key, err)
		}
	}
	return nil
}

func (seeder *Seeder) seedUsers(ctx context.Context) error {
	existing, err := seeder.users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, seed := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", seed.user.Username, err)
		}
		user := seed.user
		user.PasswordHash = string(hash)
		if _, err := seeder.users.Add(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
		seeder.log.Info().Str("username", user.Username).Msg("seeded default user")
	}
	return nil
}
