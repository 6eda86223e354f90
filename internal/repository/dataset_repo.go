package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/emlips/nc-news/internal/database"
	"github.com/emlips/nc-news/internal/models"
	"github.com/lib/pq"
)

const truncateAll = "TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE"

// datasetRepo is the concrete implementation of DatasetRepository
type datasetRepo struct {
	db *database.DB
}

// NewDatasetRepo creates a new dataset repository
func NewDatasetRepo(db *database.DB) DatasetRepository {
	return &datasetRepo{db: db}
}

// Replace truncates every table and bulk loads data with PostgreSQL COPY,
// parents first, in a single transaction.
func (r *datasetRepo) Replace(ctx context.Context, data *models.Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, truncateAll); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	steps := []struct {
		table   string
		columns []string
		rows    int
		values  func(i int) []interface{}
	}{
		{
			"topics", []string{"slug", "description"}, len(data.Topics),
			func(i int) []interface{} {
				t := data.Topics[i]
				return []interface{}{t.Slug, t.Description}
			},
		},
		{
			"users", []string{"username", "name", "avatar_url"}, len(data.Users),
			func(i int) []interface{} {
				u := data.Users[i]
				return []interface{}{u.Username, u.Name, u.AvatarURL}
			},
		},
		{
			// article_id comes from the sequence, in input order
			"articles", []string{"title", "topic", "author", "body", "created_at", "votes", "article_img_url"}, len(data.Articles),
			func(i int) []interface{} {
				a := data.Articles[i]
				imageURL := a.ImageURL
				if imageURL == "" {
					imageURL = models.DefaultArticleImageURL
				}
				return []interface{}{a.Title, a.Topic, a.Author, a.Body, a.CreatedAt, a.Votes, imageURL}
			},
		},
		{
			"comments", []string{"body", "article_id", "author", "votes", "created_at"}, len(data.Comments),
			func(i int) []interface{} {
				c := data.Comments[i]
				return []interface{}{c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt}
			},
		},
	}

	for _, step := range steps {
		if err := copyIn(ctx, tx, step.table, step.columns, step.rows, step.values); err != nil {
			return fmt.Errorf("failed to load %s: %w", step.table, err)
		}
	}

	return tx.Commit()
}

// copyIn streams n rows into table with COPY FROM STDIN
func copyIn(ctx context.Context, tx *sql.Tx, table string, columns []string, n int, values func(i int) []interface{}) error {
	if n == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, values(i)...); err != nil {
			return err
		}
	}

	// Flush the COPY buffer
	_, err = stmt.ExecContext(ctx)
	return err
}
