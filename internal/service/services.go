package service

import (
	"context"
	"encoding/json"

	"github.com/emlips/nc-news/internal/models"
	"github.com/emlips/nc-news/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	List(ctx context.Context) ([]*models.Topic, error)
}

// UserService defines the interface for user operations
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context, q *models.ArticleQuery) (*models.ArticlePage, error)
	Get(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, req *models.NewArticle) (*models.Article, error)
	Vote(ctx context.Context, id, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int, page models.Page) ([]*models.Comment, error)
	Create(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error)
	Vote(ctx context.Context, id, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
}

// EndpointService serves the static endpoint catalog
type EndpointService interface {
	Catalog() json.RawMessage
}

// HealthService reports whether the store is reachable
type HealthService interface {
	Check(ctx context.Context) error
}

// Pinger is satisfied by *database.DB
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Topic     TopicService
	User      UserService
	Article   ArticleService
	Comment   CommentService
	Endpoints EndpointService
	Health    HealthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, db Pinger, log zerolog.Logger) *Services {
	return &Services{
		Topic:     newTopicService(repos),
		User:      newUserService(repos),
		Article:   newArticleService(repos, log),
		Comment:   newCommentService(repos, log),
		Endpoints: newEndpointService(),
		Health:    &healthService{db: db},
	}
}

type healthService struct {
	db Pinger
}

func (s *healthService) Check(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}
