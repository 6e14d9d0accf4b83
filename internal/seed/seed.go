// Package seed bootstraps the default platform account.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/account/password"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@restrovibe.test"
	defaultAdminPassword = "password"
	defaultAdminName     = "Platform Admin"
)

// EnsureSuperAdmin creates the default super admin account when none exists,
// so a fresh install is reachable without manual inserts.
func EnsureSuperAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing accountdomain.User
		err := tx.WithContext(ctx).
			Where("role = ?", accountdomain.RoleSuperAdmin).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		admin := accountdomain.User{
			ID:           node.Generate(),
			ExternalID:   defaultAdminEmail,
			Name:         defaultAdminName,
			Email:        defaultAdminEmail,
			PasswordHash: hashed,
			Role:         accountdomain.RoleSuperAdmin,
			Status:       accountdomain.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&admin).Error
	})
}
