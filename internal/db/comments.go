package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AddComment inserts a remark on a project and returns the stored row.
func (db *DB) AddComment(ctx context.Context, projectID uuid.UUID, text, author, role string, visible bool) (*Comment, error) {
	var c Comment
	err := db.pool.QueryRow(ctx,
		`INSERT INTO comments (project_id, text, author, role, visible)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, project_id, author, role, text, visible, created_at`,
		projectID, text, author, role, visible,
	).Scan(&c.ID, &c.ProjectID, &c.Author, &c.Role, &c.Text, &c.Visible, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &c, nil
}

// ListComments returns a project's comments, newest first.
func (db *DB) ListComments(ctx context.Context, projectID uuid.UUID) ([]Comment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, author, role, text, visible, created_at
		 FROM comments WHERE project_id = $1 ORDER BY created_at DESC`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Author, &c.Role, &c.Text, &c.Visible, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
