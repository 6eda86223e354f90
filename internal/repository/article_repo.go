package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/emlips/nc-news/internal/database"
	"github.com/emlips/nc-news/internal/models"
)

const articleColumns = `articles.article_id, articles.title, articles.topic, articles.author,
	articles.body, articles.created_at, articles.votes, articles.article_img_url`

// Sort columns and directions cannot be bound as parameters, so they are
// mapped to fixed SQL fragments. Anything not in these maps never reaches a query.
var (
	sortColumnSQL = map[string]string{
		"article_id": "articles.article_id",
		"title":      "articles.title",
		"author":     "articles.author",
		"created_at": "articles.created_at",
		"votes":      "articles.votes",
	}
	orderSQL = map[string]string{
		"asc":  "ASC",
		"desc": "DESC",
	}
)

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List returns one page of articles with their comment counts
func (r *articleRepo) List(ctx context.Context, q *models.ArticleQuery) ([]*models.Article, error) {
	query, args, err := buildListQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// buildListQuery assembles the listing statement. Filter values and
// pagination are bound; the ORDER BY clause comes from the allow-list maps.
func buildListQuery(q *models.ArticleQuery) (string, []interface{}, error) {
	column, ok := sortColumnSQL[q.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort column %q", q.SortBy)
	}
	order, ok := orderSQL[q.Order]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort order %q", q.Order)
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT ` + articleColumns + `, COUNT(comments.comment_id)::INT AS comment_count
		FROM articles LEFT JOIN comments ON comments.article_id = articles.article_id`)

	if q.Topic != "" {
		args = append(args, q.Topic)
		fmt.Fprintf(&sb, " WHERE articles.topic = $%d", len(args))
	}

	fmt.Fprintf(&sb, " GROUP BY articles.article_id ORDER BY %s %s", column, order)
	if column != "articles.article_id" {
		fmt.Fprintf(&sb, ", articles.article_id %s", order)
	}

	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, q.Offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	return sb.String(), args, nil
}

// Count returns the number of articles matching the topic filter, ignoring pagination
func (r *articleRepo) Count(ctx context.Context, topic string) (int, error) {
	var count int
	var err error
	if topic == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE topic = $1", topic).Scan(&count)
	}
	return count, err
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `, COUNT(comments.comment_id)::INT AS comment_count
		FROM articles LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id).Scan(&exists)
	return exists, err
}

// Create inserts a new article and fills in the storage-assigned fields
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (author, title, body, topic, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING article_id, created_at, votes
	`
	err := r.db.QueryRowContext(ctx, query,
		article.Author, article.Title, article.Body, article.Topic, article.ImageURL,
	).Scan(&article.ID, &article.CreatedAt, &article.Votes)
	if err != nil {
		return err
	}

	article.CommentCount = 0
	return nil
}

// IncrementVotes adds delta to the stored vote count in a single statement
func (r *articleRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	query := `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1 WHERE article_id = $2
			RETURNING *
		)
		SELECT articles.article_id, articles.title, articles.topic, articles.author,
			articles.body, articles.created_at, articles.votes, articles.article_img_url,
			(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.article_id)::INT AS comment_count
		FROM updated AS articles
	`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, delta, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article; its comments go with it via ON DELETE CASCADE
func (r *articleRepo) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE article_id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanArticle(s scanner) (*models.Article, error) {
	var article models.Article
	err := s.Scan(
		&article.ID, &article.Title, &article.Topic, &article.Author,
		&article.Body, &article.CreatedAt, &article.Votes, &article.ImageURL,
		&article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
