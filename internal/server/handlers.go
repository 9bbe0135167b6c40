package server

import (
	"context"
	"net/http"

	"github.com/ananya/ideahub/internal/db"
	"github.com/ananya/ideahub/internal/normalize"
	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
)

// pathUUID parses a UUID path value, writing a 400 on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// loadProject fetches a project and writes the appropriate error response
// when it is missing or the lookup fails.
func (s *Server) loadProject(w http.ResponseWriter, r *http.Request) (*db.Project, bool) {
	projectID, ok := s.pathUUID(w, r, "projectId")
	if !ok {
		return nil, false
	}
	project, err := s.db.GetProject(r.Context(), projectID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load project")
		return nil, false
	}
	if project == nil {
		err := &ErrProjectNotFound{ProjectID: projectID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	return project, true
}

// projectView normalizes a stored project into the view model the dashboard
// screens render. Raw JSONB payloads pass through the normalizers so legacy
// shapes never leak to clients.
func (s *Server) projectView(ctx context.Context, p *db.Project) types.Project {
	view := types.Project{
		ID:                p.ID,
		StudentID:         p.StudentID,
		Title:             p.Title,
		Description:       p.Description,
		Tags:              p.Tags,
		Overview:          p.Overview,
		Transcribe:        normalize.Transcribe(p.Transcribe),
		Score:             p.Score,
		PotentialCategory: p.PotentialCategory,
		Remarks:           p.Remarks,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}

	if len(p.Feedback) > 0 {
		feedback := normalize.Feedback(p.Feedback)
		view.Feedback = &feedback
	}
	if len(p.Analysis) > 0 {
		analysis := normalize.LLMAnalysis(p.Analysis)
		view.LLMAnalysis = &analysis
	}
	if len(p.Feasibility) > 0 {
		feasibility, _ := normalize.Feasibility(p.Feasibility)
		view.Feasibility = &feasibility
	} else if len(p.Analysis) > 0 {
		// Older rows only stored the flat payload; render it through the
		// same tagged-union decode.
		feasibility, _ := normalize.Feasibility(p.Analysis)
		view.Feasibility = &feasibility
	}

	if files, err := s.db.ListProjectFiles(ctx, p.ID); err == nil {
		for _, f := range files {
			view.Files = append(view.Files, types.FileData{
				ID:         f.ID,
				Name:       f.Name,
				StoredName: f.StoredName,
				Size:       f.Size,
				UploadedAt: f.UploadedAt,
			})
		}
	}

	return view
}

// projectViews maps a batch of stored projects to view models.
func (s *Server) projectViews(ctx context.Context, projects []db.Project) []types.Project {
	views := make([]types.Project, 0, len(projects))
	for i := range projects {
		views = append(views, s.projectView(ctx, &projects[i]))
	}
	return views
}

// commentViews maps stored comments to view models.
func commentViews(comments []db.Comment) []types.Comment {
	views := make([]types.Comment, 0, len(comments))
	for _, c := range comments {
		views = append(views, types.Comment{
			ID:        c.ID,
			Text:      c.Text,
			Author:    c.Author,
			Role:      c.Role,
			Timestamp: c.CreatedAt,
			Visible:   c.Visible,
		})
	}
	return views
}

// userViews maps stored users to API users.
func userViews(users []db.User) []types.User {
	views := make([]types.User, 0, len(users))
	for i := range users {
		views = append(views, *convertDBUserToTypesUser(&users[i]))
	}
	return views
}
