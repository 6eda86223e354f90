package repository

import (
	"context"
	"database/sql"

	"github.com/emlips/nc-news/internal/database"
	"github.com/emlips/nc-news/internal/models"
)

const commentColumns = "comment_id, body, article_id, author, votes, created_at"

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns one page of an article's comments, oldest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int, page models.Page) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + ` FROM comments
		WHERE article_id = $1
		ORDER BY created_at ASC, comment_id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, articleID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (body, article_id, author)
		VALUES ($1, $2, $3)
		RETURNING comment_id, votes, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		comment.Body, comment.ArticleID, comment.Author,
	).Scan(&comment.ID, &comment.Votes, &comment.CreatedAt)
}

// IncrementVotes adds delta to the stored vote count in a single statement
func (r *commentRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	query := `UPDATE comments SET votes = votes + $1 WHERE comment_id = $2 RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, delta, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment, reporting whether it existed
func (r *commentRepo) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanComment(s scanner) (*models.Comment, error) {
	var comment models.Comment
	err := s.Scan(
		&comment.ID, &comment.Body, &comment.ArticleID, &comment.Author,
		&comment.Votes, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
