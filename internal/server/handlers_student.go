package server

import (
	"context"
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ananya/ideahub/internal/export"
	"github.com/ananya/ideahub/internal/extract"
	"github.com/ananya/ideahub/internal/server/middleware"
	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
)

// maxUploadBytes caps the total multipart form size for idea submissions.
const maxUploadBytes = 32 << 20 // 32 MB

// handleStudentDetails returns a student's submissions in the shape the
// student dashboard consumes: {"details": {"projects": [...]}}.
func (s *Server) handleStudentDetails(w http.ResponseWriter, r *http.Request) {
	studentID, ok := s.pathUUID(w, r, "studentId")
	if !ok {
		return
	}
	if !s.authorizeStudentAccess(w, r, studentID) {
		return
	}

	projects, err := s.db.ListProjectsByStudent(r.Context(), studentID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"details": map[string]any{
			"projects": s.projectViews(r.Context(), projects),
		},
	})
}

// handleStudentCreate accepts a multipart idea submission: studentId, title,
// description, repeated tags fields and any number of files. Uploaded HTML
// and text documents seed the transcription; the analyzer runs in the
// background when configured.
func (s *Server) handleStudentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	studentID, err := uuid.Parse(r.FormValue("studentId"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid studentId")
		return
	}
	if !s.authorizeStudentAccess(w, r, studentID) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		s.errorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	description := r.FormValue("description")
	tags := r.Form["tags"]

	// Seed the transcription from readable uploads before creating the row.
	var transcript []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			lines, err := extractTranscript(header)
			if err != nil {
				log.Printf("[upload] failed to extract text from %s: %v", header.Filename, err)
				continue
			}
			transcript = append(transcript, lines...)
		}
	}
	transcriptJSON, _ := json.Marshal(normalizeLines(transcript))

	projectID, err := s.db.CreateProject(r.Context(), studentID, title, description, tags, transcriptJSON)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			saved, err := s.store.SaveUpload(projectID, header)
			if err != nil {
				log.Printf("[upload] failed to store %s: %v", header.Filename, err)
				continue
			}
			if _, err := s.db.AddProjectFile(r.Context(), projectID, saved.Name, saved.StoredName, saved.Size); err != nil {
				log.Printf("[upload] failed to record %s: %v", saved.Name, err)
			}
		}
	}

	if s.analyzer != nil {
		go s.runAnalysis(projectID)
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"message":   "Idea submitted successfully",
		"projectId": projectID,
	})
}

// runAnalysis executes the automated assessment for a new submission.
// Detached from the request so slow model calls never block the upload.
func (s *Server) runAnalysis(projectID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	project, err := s.db.GetProject(ctx, projectID)
	if err != nil || project == nil {
		log.Printf("[analysis] project %s unavailable: %v", projectID, err)
		return
	}

	result, err := s.analyzer.Analyze(ctx, project)
	if err != nil {
		log.Printf("[analysis] failed for project %s: %v", projectID, err)
		return
	}

	if err := s.db.UpdateProjectAnalysis(ctx, projectID, result.RawAnalysis, result.RawFeasibility); err != nil {
		log.Printf("[analysis] failed to store result for %s: %v", projectID, err)
		return
	}
	if err := s.db.UpdateProjectFeedback(ctx, projectID, result.RawFeedback); err != nil {
		log.Printf("[analysis] failed to store feedback for %s: %v", projectID, err)
	}
	if result.PotentialCategory != "" {
		if err := s.db.UpdatePotentialCategory(ctx, projectID, result.PotentialCategory); err != nil {
			log.Printf("[analysis] failed to store category for %s: %v", projectID, err)
		}
	}
}

// handleStudentProject returns one submission with normalized payloads.
func (s *Server) handleStudentProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	if !s.authorizeStudentAccess(w, r, project.StudentID) {
		return
	}

	view := s.projectView(r.Context(), project)
	comments, err := s.db.ListComments(r.Context(), project.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list comments")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"project":  view,
		"comments": visibleComments(commentViews(comments)),
	})
}

// handleStudentFeedback returns the improvement report for a submission.
func (s *Server) handleStudentFeedback(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	if !s.authorizeStudentAccess(w, r, project.StudentID) {
		return
	}

	view := s.projectView(r.Context(), project)
	if view.Feedback == nil {
		empty := types.Feedback{
			HighPriorityImprovements:   []types.ImprovementItem{},
			MediumPriorityImprovements: []types.ImprovementItem{},
			LowPriorityImprovements:    []types.ImprovementItem{},
			NextStepsThisWeek:          []string{},
		}
		view.Feedback = &empty
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"feedback": view.Feedback})
}

// handleStudentTranscript streams a printable HTML transcript document.
func (s *Server) handleStudentTranscript(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	if !s.authorizeStudentAccess(w, r, project.StudentID) {
		return
	}

	view := s.projectView(r.Context(), project)
	doc := export.TranscriptHTML(view.Title, view.Transcribe)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transcript.html"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// authorizeStudentAccess lets a student reach only their own resources.
// Mentors and admins pass through.
func (s *Server) authorizeStudentAccess(w http.ResponseWriter, r *http.Request, studentID uuid.UUID) bool {
	role, err := middleware.GetRole(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	if role != types.RoleStudent {
		return true
	}
	userID, err := middleware.GetUserID(r)
	if err != nil || userID != studentID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// visibleComments filters out hidden remarks for student-facing responses.
func visibleComments(comments []types.Comment) []types.Comment {
	out := make([]types.Comment, 0, len(comments))
	for _, c := range comments {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// normalizeLines trims and drops empty transcript lines.
func normalizeLines(lines []string) []string {
	out := []string{}
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// extractTranscript pulls readable text out of an uploaded document.
// HTML files run through the DOM extractor; plain text splits on newlines.
// Binary formats contribute nothing.
func extractTranscript(header *multipart.FileHeader) ([]string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".html", ".htm":
		text, err := extract.HTMLText(file)
		if err != nil {
			return nil, err
		}
		return strings.Split(text, "\n"), nil
	case ".txt", ".md":
		return extract.PlainText(file)
	default:
		return nil, nil
	}
}
