package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postit/internal/dbx"
	"github.com/dmitrijs2005/postit/internal/storage"
)

// EnsureUniqueNames adds the unique index on users.name once the data
// allows it.
//
// Stores created by the legacy gendb tool have no constraint on names and
// may already hold duplicates. In that case the index is left out and the
// duplicated names are returned so the caller can report them; the store
// stays usable and the sweeper eventually evicts the extra rows. Calling it
// on every start creates the index on the first start after they are gone.
func (m *SQLRepositoryManager) EnsureUniqueNames(ctx context.Context, db *sql.DB) ([]string, error) {
	q := dbx.Bind(db, m.dialect)

	dups, err := duplicateNames(ctx, q)
	if err != nil || len(dups) > 0 {
		return dups, err
	}

	_, err = q.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS users_name_idx ON users (name)`)
	if err != nil {
		// a duplicate registered since the check
		if storage.IsUniqueViolation(err) {
			return duplicateNames(ctx, q)
		}
		return nil, storage.Wrap(err)
	}
	return nil, nil
}

func duplicateNames(ctx context.Context, q dbx.DBTX) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM users
	                                  WHERE name IS NOT NULL
	                                  GROUP BY name HAVING COUNT(*) > 1
	                                  ORDER BY name`)
	if err != nil {
		return nil, storage.Wrap(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storage.Wrap(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap(err)
	}
	return names, nil
}
