package repository

import (
	"context"

	"bikemarket/backend/internal/audit/domain"
)

// Repository defines persistence for audit logs. The trail is append-only
// from the application's point of view; reads happen out of band.
type Repository interface {
	Create(ctx context.Context, a *domain.AuditLog) error
}
