package services

import (
	"context"
	"database/sql"
	"iter"
	"time"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
)

// PostService creates and lists posts for the logged-in account. A nil
// session fails with common.ErrNotAuthenticated.
type PostService interface {
	Create(ctx context.Context, session *models.Session, text string) (int64, error)
	List(ctx context.Context, session *models.Session) (iter.Seq2[string, error], error)
}

type postService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) PostService {
	return &postService{db: db, repomanager: m, log: log, now: time.Now}
}

func (s *postService) Create(ctx context.Context, session *models.Session, text string) (int64, error) {
	if session == nil {
		return 0, common.ErrNotAuthenticated
	}

	post, err := s.repomanager.Posts(s.db).Create(ctx, &models.Post{
		OwnerID:   session.AccountID,
		Text:      text,
		CreatedAt: s.now(),
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug(ctx, "post created", "pid", post.ID, "uid", session.AccountID)
	return post.ID, nil
}

func (s *postService) List(ctx context.Context, session *models.Session) (iter.Seq2[string, error], error) {
	if session == nil {
		return nil, common.ErrNotAuthenticated
	}
	return s.repomanager.Posts(s.db).ListByOwner(ctx, session.AccountID), nil
}
