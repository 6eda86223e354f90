package repository

import (
	"context"

	"github.com/emlips/nc-news/internal/database"
	"github.com/emlips/nc-news/internal/models"
)

// Lookups that find nothing return (nil, nil); callers decide which
// not-found condition to report.

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]*models.Topic, error)
	Exists(ctx context.Context, slug string) (bool, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// ArticleRepository defines the interface for article data operations.
// Every article it returns carries a live comment_count.
type ArticleRepository interface {
	List(ctx context.Context, q *models.ArticleQuery) ([]*models.Article, error)
	Count(ctx context.Context, topic string) (int, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, article *models.Article) error
	IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int, page models.Page) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// DatasetRepository replaces the whole store at once. A failed Replace
// leaves the previous contents untouched.
type DatasetRepository interface {
	Replace(ctx context.Context, data *models.Dataset) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
	Dataset DatasetRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Dataset: NewDatasetRepo(db),
	}
}
