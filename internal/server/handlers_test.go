package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ananya/ideahub/internal/server/middleware"
	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBucketByPotential(t *testing.T) {
	projects := []types.Project{
		{Title: "high idea", PotentialCategory: types.PotentialHigh},
		{Title: "low idea", PotentialCategory: types.PotentialLow},
		{Title: "medium idea", PotentialCategory: types.PotentialMedium},
		{Title: "unscored idea", PotentialCategory: ""},
		{Title: "another high", PotentialCategory: types.PotentialHigh},
	}

	best, mediocre, low := bucketByPotential(projects)

	assert.Len(t, best, 2)
	assert.Len(t, low, 1)
	// Unknown and Medium categories both land in mediocre.
	assert.Len(t, mediocre, 2)
	assert.Equal(t, "high idea", best[0].Title)
	assert.Equal(t, "low idea", low[0].Title)
}

func TestVisibleComments(t *testing.T) {
	comments := []types.Comment{
		{Text: "shown", Visible: true},
		{Text: "hidden", Visible: false},
		{Text: "also shown", Visible: true},
	}

	visible := visibleComments(comments)
	assert.Len(t, visible, 2)
	assert.Equal(t, "shown", visible[0].Text)
	assert.Equal(t, "also shown", visible[1].Text)
}

func TestVisibleComments_Empty(t *testing.T) {
	assert.NotNil(t, visibleComments(nil))
	assert.Empty(t, visibleComments(nil))
}

func TestNormalizeLines(t *testing.T) {
	lines := normalizeLines([]string{"  first  ", "", "second", "   ", "third"})
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestAuthorizeStudentAccess(t *testing.T) {
	s := &Server{}
	studentID := uuid.New()

	tests := []struct {
		name     string
		userID   uuid.UUID
		role     string
		expected bool
		status   int
	}{
		{name: "student accessing own data", userID: studentID, role: types.RoleStudent, expected: true},
		{name: "student accessing someone else", userID: uuid.New(), role: types.RoleStudent, expected: false, status: http.StatusForbidden},
		{name: "mentor accessing any student", userID: uuid.New(), role: types.RoleMentor, expected: true},
		{name: "admin accessing any student", userID: uuid.New(), role: types.RoleAdmin, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(middleware.WithIdentity(req.Context(), tt.userID, tt.role))
			rec := httptest.NewRecorder()

			got := s.authorizeStudentAccess(rec, req, studentID)
			assert.Equal(t, tt.expected, got)
			if !tt.expected {
				assert.Equal(t, tt.status, rec.Code)
			}
		})
	}
}

func TestAuthorizeStudentAccess_NoIdentity(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	assert.False(t, s.authorizeStudentAccess(rec, req, uuid.New()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:54321"
	assert.Equal(t, "10.0.0.7", s.extractClientID(req))

	req.RemoteAddr = "no-port-here"
	assert.Equal(t, "no-port-here", s.extractClientID(req))
}

func TestJSONResponse(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()

	s.jsonResponse(rec, http.StatusCreated, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}
