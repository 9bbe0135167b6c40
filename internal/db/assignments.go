package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AssignMentor links a student to a mentor, replacing any previous
// assignment for that student.
func (db *DB) AssignMentor(ctx context.Context, studentID, mentorID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO mentor_assignments (student_id, mentor_id)
		 VALUES ($1, $2)
		 ON CONFLICT (student_id) DO UPDATE SET mentor_id = $2, assigned_at = NOW()`,
		studentID, mentorID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign mentor: %w", err)
	}
	return nil
}

// ListAssignments returns every student-mentor link, newest first.
func (db *DB) ListAssignments(ctx context.Context) ([]MentorAssignment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT student_id, mentor_id, assigned_at
		 FROM mentor_assignments ORDER BY assigned_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []MentorAssignment{}
	for rows.Next() {
		var a MentorAssignment
		if err := rows.Scan(&a.StudentID, &a.MentorID, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// GetMentorForStudent returns the student's assigned mentor ID, or uuid.Nil
// when no mentor is assigned.
func (db *DB) GetMentorForStudent(ctx context.Context, studentID uuid.UUID) (uuid.UUID, error) {
	var mentorID uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT mentor_id FROM mentor_assignments WHERE student_id = $1`,
		studentID,
	).Scan(&mentorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to get mentor for student: %w", err)
	}
	return mentorID, nil
}

// ListStudentsForMentor returns the students assigned to a mentor,
// newest assignment first.
func (db *DB) ListStudentsForMentor(ctx context.Context, mentorID uuid.UUID) ([]User, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 JOIN mentor_assignments ma ON ma.student_id = users.id
		 WHERE ma.mentor_id = $1
		 ORDER BY ma.assigned_at DESC`,
		mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students for mentor: %w", err)
	}
	defer rows.Close()

	students := []User{}
	for rows.Next() {
		student, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *student)
	}
	return students, rows.Err()
}
