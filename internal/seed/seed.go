package seed

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gutvbooker/internal/domain"
	"gutvbooker/internal/logger"
)

type typeSpec struct {
	name     string
	category domain.Category
	tier     domain.AccessTier
	attrs    map[string]any
	prefix   string
	count    int
}

var catalog = []typeSpec{
	{"Sony A7 III", domain.CategoryCamera, domain.TierStandard, map[string]any{"mount": "E", "sensor": "FF"}, "CAM-A7", 3},
	{"Blackmagic Pocket 6K", domain.CategoryCamera, domain.TierOsnova, map[string]any{"mount": "EF"}, "CAM-BM", 2},
	{"RED Komodo 6K", domain.CategoryCamera, domain.TierRonin, map[string]any{"mount": "RF"}, "CAM-RED", 1},
	{"Sigma 18-35 f/1.8", domain.CategoryLens, domain.TierStandard, map[string]any{"mount": "EF"}, "LNS-SG", 2},
	{"SanDisk Extreme 128GB", domain.CategoryCard, domain.TierStandard, nil, "CRD-SD", 6},
	{"NP-FZ100", domain.CategoryBattery, domain.TierStandard, nil, "BAT-FZ", 6},
	{"Sony BC-QZ1", domain.CategoryCharger, domain.TierStandard, nil, "CHG-QZ", 2},
	{"Rode Wireless GO II", domain.CategorySound, domain.TierStandard, nil, "SND-RW", 2},
	{"Manfrotto 055", domain.CategoryStand, domain.TierStandard, nil, "STD-MF", 3},
	{"Aputure 300d II", domain.CategoryLight, domain.TierOsnova, nil, "LGT-AP", 2},
	{"DJI RS 3", domain.CategoryOther, domain.TierStandard, nil, "OTH-RS", 1},
}

// Options controls demo data creation.
type Options struct {
	Reset         bool
	AdminPassword string
	UserPassword  string
}

// Run fills the database with demo users and equipment. It is idempotent:
// existing logins, type names and inventory numbers are left as they are.
func Run(db *gorm.DB, opts Options) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if opts.Reset {
			logger.Info("Cleaning old data...")
			for _, table := range []string{"booking_items", "bookings", "equipment_items", "equipment_types", "users"} {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("clean %s: %w", table, err)
				}
			}
		}

		if err := seedUsers(tx, opts); err != nil {
			return err
		}
		return seedCatalog(tx)
	})
}

func seedUsers(tx *gorm.DB, opts Options) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte(opts.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	users := []domain.User{
		{Login: "admin", Name: "Администратор", PasswordHash: string(adminHash), Role: domain.RoleAdmin, JoinDate: now.AddDate(-3, 0, 0)},
		{Login: "newbie", Name: "Новичок", PasswordHash: string(userHash), Role: domain.RoleUser, JoinDate: now.AddDate(0, -1, 0)},
		{Login: "veteran", Name: "Ветеран", PasswordHash: string(userHash), Role: domain.RoleUser, JoinDate: now.AddDate(-1, -2, 0)},
		{Login: "ronin", Name: "Ронин", PasswordHash: string(userHash), Role: domain.RoleUser, Osnova: true, Ronin: true, JoinDate: now.AddDate(-2, 0, 0)},
	}

	logger.Info("Creating users...", "count", len(users))
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users).Error
}

func seedCatalog(tx *gorm.DB) error {
	logger.Info("Creating equipment...", "types", len(catalog))

	for _, spec := range catalog {
		t := domain.EquipmentType{
			Name:        spec.name,
			Description: spec.name,
			Category:    spec.category,
			AccessTier:  spec.tier,
			Attributes:  spec.attrs,
		}
		if err := tx.Where(domain.EquipmentType{Name: spec.name}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("create type %q: %w", spec.name, err)
		}

		items := make([]domain.EquipmentItem, 0, spec.count)
		for i := 1; i <= spec.count; i++ {
			items = append(items, domain.EquipmentItem{
				EquipmentTypeID: t.ID,
				InventoryNumber: fmt.Sprintf("%s-%03d", spec.prefix, i),
				Available:       true,
			})
		}
		err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "inventory_number"}}, DoNothing: true}).
			Create(&items).Error
		if err != nil {
			return fmt.Errorf("create items for %q: %w", spec.name, err)
		}
	}
	return nil
}
