package server

import (
	"encoding/json"
	"net/http"

	"github.com/ananya/ideahub/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AssignMentorRequest is the body of POST /api/admin/assign-mentor.
type AssignMentorRequest struct {
	StudentID string `json:"studentId" validate:"required,uuid"`
	MentorID  string `json:"mentorId" validate:"required,uuid"`
}

// handleAdminStudents lists every student account.
func (s *Server) handleAdminStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.db.ListUsersByRole(r.Context(), types.RoleStudent)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list students")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"students": userViews(students)})
}

// handleAdminMentors lists every mentor account.
func (s *Server) handleAdminMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := s.db.ListUsersByRole(r.Context(), types.RoleMentor)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list mentors")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"mentors": userViews(mentors)})
}

// handleAdminAssignments lists current student-mentor links.
func (s *Server) handleAdminAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.db.ListAssignments(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}
	views := make([]types.MentorAssignment, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, types.MentorAssignment{
			StudentID:  a.StudentID,
			MentorID:   a.MentorID,
			AssignedAt: a.AssignedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"assignments": views})
}

// handleAssignMentor links a student to a mentor. Reassignment replaces the
// previous link; nothing else is mutated.
func (s *Server) handleAssignMentor(w http.ResponseWriter, r *http.Request) {
	var req AssignMentorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	studentID, _ := uuid.Parse(req.StudentID)
	mentorID, _ := uuid.Parse(req.MentorID)

	// Both sides must exist and hold the right role.
	student, err := s.db.GetUser(r.Context(), studentID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load student")
		return
	}
	if student == nil {
		e := &ErrUserNotFound{UserID: studentID}
		s.errorResponse(w, HTTPStatus(e), e.Error())
		return
	}
	if student.Role != types.RoleStudent {
		e := &ErrRoleMismatch{UserID: studentID, Want: types.RoleStudent}
		s.errorResponse(w, HTTPStatus(e), e.Error())
		return
	}

	mentor, err := s.db.GetUser(r.Context(), mentorID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load mentor")
		return
	}
	if mentor == nil {
		e := &ErrUserNotFound{UserID: mentorID}
		s.errorResponse(w, HTTPStatus(e), e.Error())
		return
	}
	if mentor.Role != types.RoleMentor {
		e := &ErrRoleMismatch{UserID: mentorID, Want: types.RoleMentor}
		s.errorResponse(w, HTTPStatus(e), e.Error())
		return
	}

	if err := s.db.AssignMentor(r.Context(), studentID, mentorID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to assign mentor")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Mentor assigned successfully"})
}

// handlePotentialIdeas returns every student's submissions plus the same
// ideas bucketed by potential: High scores land in best, Low in low and
// everything else in mediocre.
func (s *Server) handlePotentialIdeas(w http.ResponseWriter, r *http.Request) {
	students, err := s.db.ListUsersByRole(r.Context(), types.RoleStudent)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list students")
		return
	}

	ideas := []types.StudentIdeas{}
	categorized := types.CategorizedIdeas{
		Best:     []types.StudentIdeas{},
		Mediocre: []types.StudentIdeas{},
		Low:      []types.StudentIdeas{},
	}

	for i := range students {
		student := convertDBUserToTypesUser(&students[i])
		projects, err := s.db.ListProjectsByStudent(r.Context(), students[i].ID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to list projects")
			return
		}
		views := s.projectViews(r.Context(), projects)
		ideas = append(ideas, types.StudentIdeas{Student: student, Projects: views})

		best, mediocre, low := bucketByPotential(views)
		if len(best) > 0 {
			categorized.Best = append(categorized.Best, types.StudentIdeas{Student: student, Projects: best})
		}
		if len(mediocre) > 0 {
			categorized.Mediocre = append(categorized.Mediocre, types.StudentIdeas{Student: student, Projects: mediocre})
		}
		if len(low) > 0 {
			categorized.Low = append(categorized.Low, types.StudentIdeas{Student: student, Projects: low})
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"ideas":       ideas,
		"categorized": categorized,
	})
}

// bucketByPotential splits projects on their potential category.
func bucketByPotential(projects []types.Project) (best, mediocre, low []types.Project) {
	for _, p := range projects {
		switch p.PotentialCategory {
		case types.PotentialHigh:
			best = append(best, p)
		case types.PotentialLow:
			low = append(low, p)
		default:
			mediocre = append(mediocre, p)
		}
	}
	return best, mediocre, low
}

// handleAdminOverview returns headline counts for the admin landing screen.
func (s *Server) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	students, err := s.db.ListUsersByRole(r.Context(), types.RoleStudent)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list students")
		return
	}
	mentors, err := s.db.ListUsersByRole(r.Context(), types.RoleMentor)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list mentors")
		return
	}
	assignments, err := s.db.ListAssignments(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}
	projects, err := s.db.ListProjects(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	counts := map[string]int{"best": 0, "mediocre": 0, "low": 0}
	for _, p := range projects {
		switch p.PotentialCategory {
		case types.PotentialHigh:
			counts["best"]++
		case types.PotentialLow:
			counts["low"]++
		default:
			counts["mediocre"]++
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"students":    len(students),
		"mentors":     len(mentors),
		"assignments": len(assignments),
		"ideas":       len(projects),
		"categorized": counts,
	})
}
