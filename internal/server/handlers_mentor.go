package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ananya/ideahub/internal/server/middleware"
	"github.com/ananya/ideahub/internal/types"
	"github.com/jackc/pgx/v5"
)

// AddCommentRequest is the body of POST /api/mentor/comments/{projectId}.
type AddCommentRequest struct {
	Text    string `json:"text" validate:"required"`
	Visible *bool  `json:"visible,omitempty"`
}

// handleMentorStudents lists the students assigned to a mentor. Mentors can
// only read their own roster; admins can read anyone's.
func (s *Server) handleMentorStudents(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := s.pathUUID(w, r, "mentorId")
	if !ok {
		return
	}

	role, err := middleware.GetRole(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if role == types.RoleMentor {
		userID, err := middleware.GetUserID(r)
		if err != nil || userID != mentorID {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	students, err := s.db.ListStudentsForMentor(r.Context(), mentorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list students")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"students": userViews(students)})
}

// handleMentorProject returns the review view of a submission: the idea
// itself plus its automated assessment payloads.
func (s *Server) handleMentorProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	view := s.projectView(r.Context(), project)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"title":       view.Title,
		"description": view.Description,
		"tags":        view.Tags,
		"overview":    view.Overview,
		"llmAnalysis": view.LLMAnalysis,
		"feasibility": view.Feasibility,
	})
}

// handleMentorAnalysis returns the automated assessment, optionally
// translated into the language named by ?lang=.
func (s *Server) handleMentorAnalysis(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	view := s.projectView(r.Context(), project)

	payload := map[string]any{
		"llmAnalysis": view.LLMAnalysis,
		"feasibility": view.Feasibility,
	}

	lang := r.URL.Query().Get("lang")
	if lang != "" && lang != "en" {
		if s.translator == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "translation service not configured")
			return
		}
		translated, err := s.translator.TranslateStructuredOutput(r.Context(), lang, payload)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "translation failed")
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"analysis": translated, "language": lang})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"analysis": payload, "language": "en"})
}

// handleMentorComments lists a submission's comments, newest first.
func (s *Server) handleMentorComments(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	comments, err := s.db.ListComments(r.Context(), project.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"comments": commentViews(comments)})
}

// handleMentorAddComment records a new comment attributed to the caller.
func (s *Server) handleMentorAddComment(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	author := ""
	if user, err := s.db.GetUser(r.Context(), userID); err == nil && user != nil {
		author = user.Name
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	comment, err := s.db.AddComment(r.Context(), project.ID, req.Text, author, role, visible)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to add comment")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"comment": types.Comment{
			ID:        comment.ID,
			Text:      comment.Text,
			Author:    comment.Author,
			Role:      comment.Role,
			Timestamp: comment.CreatedAt,
			Visible:   comment.Visible,
		},
	})
}

// handleMentorRemarks stores a mentor's score, potential category and free
// form remarks for a submission.
func (s *Server) handleMentorRemarks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := s.pathUUID(w, r, "projectId")
	if !ok {
		return
	}

	var req types.MentorRemarks
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	err := s.db.UpdateMentorRemarks(r.Context(), projectID, req.Score, req.PotentialCategory, req.Remarks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			e := &ErrProjectNotFound{ProjectID: projectID}
			s.errorResponse(w, HTTPStatus(e), e.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to update remarks")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Remarks saved successfully"})
}
