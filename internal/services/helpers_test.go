package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"database/sql"
	"math/big"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/postit/internal/cryptox"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
	"github.com/dmitrijs2005/postit/internal/storage"
	"github.com/stretchr/testify/require"
)

type env struct {
	db       *sql.DB
	rm       *repomanager.SQLRepositoryManager
	accounts *accountService
	auth     *authService
	posts    *postService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := storage.Open(ctx, filepath.Join(t.TempDir(), "postit.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.New(dialect)
	require.NoError(t, rm.RunMigrations(ctx, db))

	log := logging.Discard()
	return &env{
		db:       db,
		rm:       rm,
		accounts: NewAccountService(db, rm, log).(*accountService),
		auth:     NewAuthService(db, rm, log).(*authService),
		posts:    NewPostService(db, rm, log).(*postService),
	}
}

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func privateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 1024)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

func exponentOf(k *rsa.PrivateKey) string { return strconv.Itoa(k.E) }
func modulusOf(k *rsa.PrivateKey) string  { return k.N.String() }

func sign(k *rsa.PrivateKey, challenge string) string {
	m := cryptox.BytesToInt([]byte(challenge))
	return new(big.Int).Exp(m, k.D, k.N).String()
}

// signer answers every challenge with a valid signature.
func signer(k *rsa.PrivateKey) Responder {
	return func(_ context.Context, challenge string) (string, error) {
		return sign(k, challenge), nil
	}
}

func fixed(answer string) Responder {
	return func(context.Context, string) (string, error) {
		return answer, nil
	}
}
