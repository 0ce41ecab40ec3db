package service

import (
	"context"

	"github.com/hotelhub/auth-service/internal/logging"
	"github.com/hotelhub/auth-service/internal/models"
	"github.com/hotelhub/auth-service/internal/repo"
)

// EnsureSeedRoles populates the fixed role set on first start. Idempotent:
// an already-seeded role table is left untouched.
func EnsureSeedRoles(ctx context.Context, r *repo.GormRepo) error {
	l := logging.FromContext(ctx).With("svc", "role_seed")

	count, err := r.CountRoles(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		l.Info("roles already seeded", "count", count)
		return nil
	}

	names := []string{models.RoleAdmin, models.RoleUser, models.RoleHotelManager}
	if err := r.SaveRoles(ctx, names); err != nil {
		return err
	}
	l.Info("seeded default roles", "roles", names)
	return nil
}
