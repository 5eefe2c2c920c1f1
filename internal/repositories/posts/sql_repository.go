package posts

import (
	"context"
	"database/sql"
	"errors"
	"iter"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/dbx"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/storage"
)

type SQLRepository struct {
	db       dbx.DBTX
	rowLocks bool
}

type Option func(*SQLRepository)

// WithRowLocks makes Create share-lock the owner row while it inserts, so a
// concurrent eviction either waits for the post or the post sees the owner
// gone.
func WithRowLocks() Option {
	return func(r *SQLRepository) { r.rowLocks = true }
}

func NewSQLRepository(db dbx.DBTX, opts ...Option) *SQLRepository {
	r := &SQLRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *SQLRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Text == "" {
		return nil, common.ErrEmptyText
	}

	// the owner check and the insert are one statement so a concurrent
	// sweep cannot slip between them
	owner := `SELECT 1 FROM users WHERE uid = ?`
	if r.rowLocks {
		owner += ` FOR KEY SHARE`
	}
	query := `INSERT INTO posts (uid, text, creat)
	          SELECT CAST(? AS BIGINT), CAST(? AS TEXT), CAST(? AS BIGINT)
	          WHERE EXISTS (` + owner + `)
	          RETURNING pid`

	err := r.db.QueryRowContext(ctx, query,
		post.OwnerID, post.Text, post.CreatedAt.Unix(), post.OwnerID).Scan(&post.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrUnknownAccount
		}
		return nil, storage.Wrap(err)
	}

	return post, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID int64) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		rows, err := r.db.QueryContext(ctx, `SELECT text FROM posts WHERE uid = ? ORDER BY pid`, ownerID)
		if err != nil {
			yield("", storage.Wrap(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var text string
			if err := rows.Scan(&text); err != nil {
				yield("", storage.Wrap(err))
				return
			}
			if !yield(text, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield("", storage.Wrap(err))
		}
	}
}

func (r *SQLRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE uid = ?`, ownerID)
	if err != nil {
		return 0, storage.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storage.Wrap(err)
	}
	return n, nil
}
