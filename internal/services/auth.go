package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/cryptox"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
)

// Responder presents a challenge to whoever holds the private key and returns
// their decimal signature over it.
type Responder func(ctx context.Context, challenge string) (string, error)

// AuthService logs accounts in by challenge-response.
//
// Authenticate looks the account up, issues a fresh random challenge,
// hands it to respond and checks the returned signature against the stored
// public key. On success it returns a new Session; the caller replaces any
// session it already holds. Nothing is written to storage.
//
// Failures: common.ErrUnknownAccount (no such account, including one swept
// while the challenge was outstanding), common.ErrMalformedSignature (not a
// decimal string) and common.ErrInvalidSignature (verification failed).
// Errors from respond are returned unchanged.
type AuthService interface {
	Authenticate(ctx context.Context, name string, respond Responder) (*models.Session, error)
}

type authService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	challenge   func() string
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) AuthService {
	return &authService{
		db:          db,
		repomanager: m,
		log:         log,
		challenge:   func() string { return common.RandString(common.ChallengeLength) },
	}
}

func (s *authService) Authenticate(ctx context.Context, name string, respond Responder) (*models.Session, error) {
	if name == "" {
		return nil, common.ErrMissingName
	}

	repo := s.repomanager.Accounts(s.db)

	id, err := repo.FindIDByName(ctx, name)
	if err != nil {
		return nil, err
	}

	challenge := s.challenge()

	signature, err := respond(ctx, challenge)
	if err != nil {
		return nil, err
	}
	if !common.IsNumString(signature) {
		return nil, common.ErrMalformedSignature
	}

	// the account may have been swept while we waited for the signature
	key, err := repo.GetPublicKey(ctx, name)
	if err != nil {
		return nil, err
	}

	if !cryptox.VerifyStrings(challenge, signature, key.Exponent, key.Modulus) {
		s.log.Warn(ctx, "login failed", "name", name)
		return nil, common.ErrInvalidSignature
	}

	s.log.Info(ctx, "login", "uid", id, "name", name)
	return &models.Session{AccountID: id, Name: name}, nil
}
