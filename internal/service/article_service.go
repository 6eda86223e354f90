package service

import (
	"context"

	"github.com/emlips/nc-news/internal/apperr"
	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newArticleService(repos *repository.Repositories, log zerolog.Logger) *articleService {
	return &articleService{
		repos: repos,
		log:   log.With().Str("service", "article").Logger(),
	}
}

// List runs the page query, the filtered total and the topic check
// concurrently. If any of them fails, the listing fails.
func (s *articleService) List(ctx context.Context, q *models.ArticleQuery) (*models.ArticlePage, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		articles    []*models.Article
		total       int
		topicExists = true
	)

	g.Go(func() error {
		var err error
		articles, err = s.repos.Article.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repos.Article.Count(gctx, q.Topic)
		return err
	})
	if q.Topic != "" {
		g.Go(func() error {
			var err error
			topicExists, err = s.repos.Topic.Exists(gctx, q.Topic)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !topicExists {
		return nil, apperr.NotFound("topic not found")
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	return &models.ArticlePage{Articles: articles, TotalCount: total}, nil
}

func (s *articleService) Get(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.NotFound("article does not exist")
	}
	return article, nil
}

// Create checks the author and topic before inserting. The foreign keys
// still guard the insert itself.
func (s *articleService) Create(ctx context.Context, req *models.NewArticle) (*models.Article, error) {
	g, gctx := errgroup.WithContext(ctx)

	var authorExists, topicExists bool
	g.Go(func() error {
		var err error
		authorExists, err = s.repos.User.Exists(gctx, req.Author)
		return err
	})
	g.Go(func() error {
		var err error
		topicExists, err = s.repos.Topic.Exists(gctx, req.Topic)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !authorExists || !topicExists {
		return nil, apperr.BadRequest()
	}

	article := &models.Article{
		Author:   req.Author,
		Title:    req.Title,
		Body:     req.Body,
		Topic:    req.Topic,
		ImageURL: req.ImageURL,
	}
	if article.ImageURL == "" {
		article.ImageURL = models.DefaultArticleImageURL
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Int("article_id", article.ID).Str("topic", article.Topic).Msg("Article created")
	return article, nil
}

func (s *articleService) Vote(ctx context.Context, id, delta int) (*models.Article, error) {
	article, err := s.repos.Article.IncrementVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperr.NotFound("article does not exist")
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repos.Article.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("article does not exist")
	}

	s.log.Info().Int("article_id", id).Msg("Article deleted")
	return nil
}
