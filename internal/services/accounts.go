// Package services holds postit's application logic: account registration and
// lookup, challenge-response login and posting. Services are thin
// orchestrations over the repositories handed out by a RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
)

// AccountService registers and looks up accounts.
type AccountService interface {
	// Register stores a new account under name. Exponent and modulus must be
	// non-empty decimal strings. A taken name fails with common.ErrDuplicateName
	// and the existing key stays as it was.
	Register(ctx context.Context, name, exponent, modulus string) (int64, error)

	// List returns all accounts without their keys.
	List(ctx context.Context) ([]models.Account, error)

	// Info returns the account with its public key.
	Info(ctx context.Context, name string) (*models.Account, error)
}

type accountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) AccountService {
	return &accountService{db: db, repomanager: m, log: log, now: time.Now}
}

func (s *accountService) Register(ctx context.Context, name, exponent, modulus string) (int64, error) {
	if name == "" {
		return 0, common.ErrMissingName
	}
	if !common.IsNumString(exponent) || !common.IsNumString(modulus) {
		return 0, common.ErrInvalidKeyFormat
	}

	account, err := s.repomanager.Accounts(s.db).Create(ctx, &models.Account{
		Name:      name,
		Key:       models.PublicKey{Exponent: exponent, Modulus: modulus},
		CreatedAt: s.now(),
	})
	if err != nil {
		return 0, err
	}

	s.log.Info(ctx, "account registered", "uid", account.ID, "name", name)
	return account.ID, nil
}

func (s *accountService) List(ctx context.Context) ([]models.Account, error) {
	return s.repomanager.Accounts(s.db).ListAll(ctx)
}

func (s *accountService) Info(ctx context.Context, name string) (*models.Account, error) {
	if name == "" {
		return nil, common.ErrMissingName
	}

	repo := s.repomanager.Accounts(s.db)
	id, err := repo.FindIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}
