package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/dbx"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/storage"
)

// SQLRepository implements Repository with '?' placeholders. Wrap the handle
// with dbx.Bind for dialects that need another form.
type SQLRepository struct {
	db       dbx.DBTX
	rowLocks bool
}

type Option func(*SQLRepository)

// WithRowLocks makes LockForDelete take a row lock. Use it for stores that
// let writers run concurrently (Postgres); SQLite already serializes them.
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

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.Name == "" {
		return nil, common.ErrMissingName
	}
	if account.Key.Exponent == "" || account.Key.Modulus == "" {
		return nil, common.ErrInvalidKeyFormat
	}

	query := `INSERT INTO users (name, mod, exp, creat)
	          VALUES (?, ?, ?, ?)
	          RETURNING uid`

	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Key.Modulus, account.Key.Exponent, account.CreatedAt.Unix()).Scan(&account.ID)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateName
		}
		return nil, storage.Wrap(err)
	}

	return account, nil
}

func (r *SQLRepository) FindIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT uid FROM users WHERE name = ?`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrUnknownAccount
		}
		return 0, storage.Wrap(err)
	}
	return id, nil
}

func (r *SQLRepository) GetPublicKey(ctx context.Context, name string) (models.PublicKey, error) {
	var key models.PublicKey
	err := r.db.QueryRowContext(ctx, `SELECT exp, mod FROM users WHERE name = ?`, name).
		Scan(&key.Exponent, &key.Modulus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PublicKey{}, common.ErrUnknownAccount
		}
		return models.PublicKey{}, storage.Wrap(err)
	}
	return key, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT uid, name, exp, mod, creat FROM users WHERE uid = ?`

	var (
		a     models.Account
		creat int64
	)
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.Key.Exponent, &a.Key.Modulus, &creat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrUnknownAccount
		}
		return nil, storage.Wrap(err)
	}
	a.CreatedAt = time.Unix(creat, 0)

	return &a, nil
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT uid, name, creat FROM users ORDER BY uid`)
	if err != nil {
		return nil, storage.Wrap(err)
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var (
			a     models.Account
			creat int64
		)
		if err := rows.Scan(&a.ID, &a.Name, &creat); err != nil {
			return nil, storage.Wrap(err)
		}
		a.CreatedAt = time.Unix(creat, 0)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap(err)
	}

	return result, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uid = ?`, id); err != nil {
		return storage.Wrap(err)
	}
	return nil
}

func (r *SQLRepository) LockForDelete(ctx context.Context, id int64) error {
	if !r.rowLocks {
		return nil
	}
	var uid int64
	err := r.db.QueryRowContext(ctx, `SELECT uid FROM users WHERE uid = ? FOR UPDATE`, id).Scan(&uid)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storage.Wrap(err)
	}
	return nil
}
