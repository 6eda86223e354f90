package service

import (
	"context"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) *commentService {
	return &commentService{
		repos: repos,
		log:   log.With().Str("service", "comment").Logger(),
	}
}

// ListByArticle fetches the page and checks the article concurrently, so an
// article without comments yields an empty page rather than a not-found.
func (s *commentService) ListByArticle(ctx context.Context, articleID int, page models.Page) ([]*models.Comment, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		comments []*models.Comment
		exists   bool
	)
	g.Go(func() error {
		var err error
		comments, err = s.repos.Comment.ListByArticle(gctx, articleID, page)
		return err
	})
	g.Go(func() error {
		var err error
		exists, err = s.repos.Article.Exists(gctx, articleID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("article does not exist")
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// Create rejects unknown articles and users with a bad request before
// inserting.
func (s *commentService) Create(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
	g, gctx := errgroup.WithContext(ctx)

	var articleExists, userExists bool
	g.Go(func() error {
		var err error
		articleExists, err = s.repos.Article.Exists(gctx, articleID)
		return err
	})
	g.Go(func() error {
		var err error
		userExists, err = s.repos.User.Exists(gctx, req.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !articleExists || !userExists {
		return nil, apperr.BadRequest()
	}

	comment := &models.Comment{
		Body:      req.Body,
		ArticleID: articleID,
		Author:    req.Username,
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().Int("comment_id", comment.ID).Int("article_id", articleID).Msg("Comment created")
	return comment, nil
}

func (s *commentService) Vote(ctx context.Context, id, delta int) (*models.Comment, error) {
	comment, err := s.repos.Comment.IncrementVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFound("comment does not exist")
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repos.Comment.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("comment not found")
	}
	return nil
}
