// Package posts stores messages owned by accounts.
package posts

import (
	"context"
	"iter"

	"github.com/dmitrijs2005/postit/internal/models"
)

// Repository is the post ledger.
type Repository interface {
	// Create appends a post. It fails with common.ErrUnknownAccount when the
	// owner no longer exists. Together with accounts.Repository.LockForDelete
	// in the evicting transaction, a post is never left without an account.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)

	// ListByOwner yields the owner's post texts in insertion order. Every
	// range over the result runs a fresh query.
	ListByOwner(ctx context.Context, ownerID int64) iter.Seq2[string, error]

	// DeleteByOwner removes all the owner's posts and returns how many went.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
