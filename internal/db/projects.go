package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const projectColumns = `id, student_id, title, description, tags, overview,
	transcribe, feedback, analysis, feasibility, score, potential_category,
	remarks, created_at, updated_at`

// CreateProject inserts a new idea submission and returns its ID.
// transcribe is the raw JSONB payload seeded from uploaded documents.
func (db *DB) CreateProject(ctx context.Context, studentID uuid.UUID, title, description string, tags StringArray, transcribe []byte) (uuid.UUID, error) {
	if transcribe == nil {
		transcribe = []byte("[]")
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO projects (student_id, title, description, tags, transcribe)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		studentID, title, description, tags, transcribe,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

// GetProject retrieves a project by ID. Returns (nil, nil) when not found.
func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*Project, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID)
	project, err := scanProject(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjectsByStudent returns a student's submissions, newest first.
func (db *DB) ListProjectsByStudent(ctx context.Context, studentID uuid.UUID) ([]Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE student_id = $1 ORDER BY created_at DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListProjects returns every submission, newest first. Used by the admin
// potential-ideas report.
func (db *DB) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// UpdateProjectAnalysis stores the raw analyzer payload and its normalized
// feasibility rendering in one statement.
func (db *DB) UpdateProjectAnalysis(ctx context.Context, projectID uuid.UUID, analysis, feasibility []byte) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE projects SET analysis = $1, feasibility = $2, updated_at = NOW() WHERE id = $3`,
		analysis, feasibility, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project analysis: %w", err)
	}
	return nil
}

// UpdateProjectFeedback stores the improvement-report payload.
func (db *DB) UpdateProjectFeedback(ctx context.Context, projectID uuid.UUID, feedback []byte) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE projects SET feedback = $1, updated_at = NOW() WHERE id = $2`,
		feedback, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project feedback: %w", err)
	}
	return nil
}

// UpdateMentorRemarks persists a mentor's score, potential category and
// written remarks.
func (db *DB) UpdateMentorRemarks(ctx context.Context, projectID uuid.UUID, score float64, category, remarks string) error {
	// A score-only update leaves category empty; keep whatever category the
	// project already carries rather than blanking it.
	tag, err := db.pool.Exec(ctx,
		`UPDATE projects
		 SET score = $1,
		     potential_category = COALESCE(NULLIF($2, ''), potential_category),
		     remarks = $3,
		     updated_at = NOW()
		 WHERE id = $4`,
		score, category, remarks, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mentor remarks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdatePotentialCategory sets the derived category when no mentor score
// exists yet.
func (db *DB) UpdatePotentialCategory(ctx context.Context, projectID uuid.UUID, category string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE projects SET potential_category = $1, updated_at = NOW()
		 WHERE id = $2 AND score = 0`,
		category, projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update potential category: %w", err)
	}
	return nil
}

// AddProjectFile records an uploaded file for a project.
func (db *DB) AddProjectFile(ctx context.Context, projectID uuid.UUID, name, storedName string, size int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO project_files (project_id, name, stored_name, size)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		projectID, name, storedName, size,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add project file: %w", err)
	}
	return id, nil
}

// ListProjectFiles returns a project's uploaded files, oldest first.
func (db *DB) ListProjectFiles(ctx context.Context, projectID uuid.UUID) ([]ProjectFile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, name, stored_name, size, uploaded_at
		 FROM project_files WHERE project_id = $1 ORDER BY uploaded_at`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project files: %w", err)
	}
	defer rows.Close()

	files := []ProjectFile{}
	for rows.Next() {
		var f ProjectFile
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Name, &f.StoredName, &f.Size, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// collectProjects drains rows into a slice.
func collectProjects(rows pgx.Rows) ([]Project, error) {
	projects := []Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// scanProject reads one project row in projectColumns order.
func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.StudentID, &p.Title, &p.Description, &p.Tags, &p.Overview,
		&p.Transcribe, &p.Feedback, &p.Analysis, &p.Feasibility,
		&p.Score, &p.PotentialCategory, &p.Remarks, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
