package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account with one of the three dashboard roles.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department,omitempty"`
	Expertise    string    `json:"expertise,omitempty"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Project represents an idea submission record. The JSONB payload columns
// (transcribe, feedback, analysis, feasibility) are kept raw; the normalize
// package turns them into view models.
type Project struct {
	ID                uuid.UUID   `json:"id"`
	StudentID         uuid.UUID   `json:"student_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Tags              StringArray `json:"tags"` // JSONB array
	Overview          string      `json:"overview"`
	Transcribe        []byte      `json:"-"`
	Feedback          []byte      `json:"-"`
	Analysis          []byte      `json:"-"`
	Feasibility       []byte      `json:"-"`
	Score             float64     `json:"score"`
	PotentialCategory string      `json:"potential_category"`
	Remarks           string      `json:"remarks"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ProjectFile represents one uploaded supporting document.
type ProjectFile struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Name       string    `json:"name"`
	StoredName string    `json:"stored_name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Comment represents one remark on a project.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}

// MentorAssignment links a student to their mentor. One mentor per student.
type MentorAssignment struct {
	StudentID  uuid.UUID `json:"student_id"`
	MentorID   uuid.UUID `json:"mentor_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return errors.New("unsupported source type for StringArray")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
