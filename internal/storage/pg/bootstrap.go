package pg

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dkrasnov/backoffice/internal/config"
	"github.com/dkrasnov/backoffice/internal/domain"
	"github.com/dkrasnov/backoffice/internal/logger"
)

// Bootstrap performs first-boot seeding: the default administrator account
// and the environment's own frontend URL as a locked trusted origin. It runs
// before the origin cache loads, so the first snapshot already contains the
// seeded origin. Seeded records are locked and survive reseeding.
func (s *Storage) Bootstrap(cfg *config.Config) error {
	if cfg.Private.AdminPassword != "" {
		passHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Private.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		err = s.EnsureUser(domain.User{
			Email:     "admin@admin.com",
			PassHash:  string(passHash),
			FirstName: "CMS",
			LastName:  "Admin",
			Role:      domain.RoleAdmin,
		})
		if err != nil {
			return err
		}
		logger.Log.Info("users table seeded", "email", "admin@admin.com")
	}

	if cfg.Public.FrontendUrl == "" {
		logger.Log.Warn("frontend_url is not configured, skipping origin seeding")
		return nil
	}

	origin, err := domain.NormalizeOrigin(cfg.Public.FrontendUrl)
	if err != nil {
		return err
	}
	if err := s.EnsureOrigin(origin, "Back Office Frontend URL"); err != nil {
		return err
	}
	logger.Log.Info("allowed hosts table seeded", "url", origin)
	return nil
}
