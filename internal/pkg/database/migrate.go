package database

import (
	"Inkwell/internal/model"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultRoles are seeded by Migrate. Ids 3 and 4 are the ones auth.admin_role_ids
// grants admin rights to by default.
var DefaultRoles = []model.Role{
	{ID: 1, Name: "user"},
	{ID: 2, Name: "moderator"},
	{ID: 3, Name: "admin"},
	{ID: 4, Name: "superadmin"},
}

// Migrate creates or updates the user, role, post, tag and post_tag tables and seeds roles.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Post{}, "Tags", &model.PostTag{}); err != nil {
		return fmt.Errorf("failed to set up post_tag join table: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Tag{},
		&model.Post{},
		&model.PostTag{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	roles := make([]model.Role, len(DefaultRoles))
	copy(roles, DefaultRoles)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	log.Info("Database schema is up to date.")
	return nil
}
