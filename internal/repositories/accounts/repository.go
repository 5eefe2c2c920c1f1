// Package accounts persists registered identities: a unique name, the RSA
// public key as decimal strings and the creation time.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/postit/internal/models"
)

// Repository is the account store.
type Repository interface {
	// Create inserts the account and fills in its ID. A taken name yields
	// common.ErrDuplicateName and leaves the existing row untouched.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// FindIDByName returns common.ErrUnknownAccount when no account has the name.
	FindIDByName(ctx context.Context, name string) (int64, error)

	// GetPublicKey returns common.ErrUnknownAccount when no account has the name.
	GetPublicKey(ctx context.Context, name string) (models.PublicKey, error)

	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// ListAll returns every account ordered by ID. Keys are not loaded.
	ListAll(ctx context.Context) ([]models.Account, error)

	// LockForDelete holds the account row until the surrounding transaction
	// ends, so no post can be added for it meanwhile. It must run inside a
	// transaction. A missing account is not an error.
	LockForDelete(ctx context.Context, id int64) error

	// Delete removes the account row. Deleting a missing account is not an error.
	Delete(ctx context.Context, id int64) error
}
