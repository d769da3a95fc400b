// Package users contains the durable user store behind AuthVault: a common
// Repository interface with file, PostgreSQL and S3 backends.
package users

import (
	"context"

	"github.com/dmitrijs2005/authvault/internal/server/models"
)

// Repository is the durable mapping from identity to user record.
//
// Insert does not check email uniqueness itself; callers are expected to
// check Exists first and serialize the check-then-insert sequence (the
// Postgres backend additionally enforces uniqueness with a constraint).
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
}

// Seed state for a store that is initialized on first access.
var demoUser = models.User{
	ID:    "1",
	Email: "demo@example.com",
	Name:  "Demo User",
	// bcrypt hash of "demo123"
	PasswordHash: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
}
