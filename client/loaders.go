package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ananya/ideahub/internal/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// StudentProjects loads a student's submissions.
func (c *Client) StudentProjects(ctx context.Context, studentID uuid.UUID) ([]types.Project, error) {
	var resp struct {
		Details struct {
			Projects []types.Project `json:"projects"`
		} `json:"details"`
	}
	path := fmt.Sprintf("/api/student/%s", studentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Details.Projects, nil
}

// ProjectDetail loads one submission with its visible comments.
func (c *Client) ProjectDetail(ctx context.Context, projectID uuid.UUID) (*types.Project, []types.Comment, error) {
	var resp struct {
		Project  types.Project   `json:"project"`
		Comments []types.Comment `json:"comments"`
	}
	path := fmt.Sprintf("/api/student/project/%s", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, nil, err
	}
	return &resp.Project, resp.Comments, nil
}

// ProjectFeedback loads the improvement report for a submission.
func (c *Client) ProjectFeedback(ctx context.Context, projectID uuid.UUID) (*types.Feedback, error) {
	var resp struct {
		Feedback types.Feedback `json:"feedback"`
	}
	path := fmt.Sprintf("/api/student/feedback/%s", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Feedback, nil
}

// MentorStudents loads the students assigned to a mentor.
func (c *Client) MentorStudents(ctx context.Context, mentorID uuid.UUID) ([]types.User, error) {
	var resp struct {
		Students []types.User `json:"students"`
	}
	path := fmt.Sprintf("/api/mentor/%s/students", mentorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Students, nil
}

// ProjectComments loads all comments on a submission, newest first.
func (c *Client) ProjectComments(ctx context.Context, projectID uuid.UUID) ([]types.Comment, error) {
	var resp struct {
		Comments []types.Comment `json:"comments"`
	}
	path := fmt.Sprintf("/api/mentor/comments/%s", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// AddComment posts a new comment on a submission.
func (c *Client) AddComment(ctx context.Context, projectID uuid.UUID, text string) (*types.Comment, error) {
	var resp struct {
		Comment types.Comment `json:"comment"`
	}
	path := fmt.Sprintf("/api/mentor/comments/%s", projectID)
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Comment, nil
}

// SaveRemarks stores a mentor's evaluation of a submission.
func (c *Client) SaveRemarks(ctx context.Context, projectID uuid.UUID, remarks types.MentorRemarks) error {
	path := fmt.Sprintf("/api/mentor/remarks/%s", projectID)
	return c.do(ctx, http.MethodPut, path, remarks, nil)
}

// PotentialIdeas loads every student's ideas bucketed by potential.
func (c *Client) PotentialIdeas(ctx context.Context) ([]types.StudentIdeas, *types.CategorizedIdeas, error) {
	var resp struct {
		Ideas       []types.StudentIdeas   `json:"ideas"`
		Categorized types.CategorizedIdeas `json:"categorized"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/potential-ideas", nil, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Ideas, &resp.Categorized, nil
}

// AssignMentor links a student to a mentor.
func (c *Client) AssignMentor(ctx context.Context, studentID, mentorID uuid.UUID) error {
	body := map[string]string{
		"studentId": studentID.String(),
		"mentorId":  mentorID.String(),
	}
	return c.do(ctx, http.MethodPost, "/api/admin/assign-mentor", body, nil)
}

// AdminOverview aggregates the data the admin dashboard renders on load.
type AdminOverview struct {
	Students    []types.User
	Mentors     []types.User
	Assignments []types.MentorAssignment
	Ideas       []types.StudentIdeas
	Categorized types.CategorizedIdeas
}

// LoadAdminOverview fetches the admin dashboard's data sets concurrently.
// Any single failure fails the whole load.
func (c *Client) LoadAdminOverview(ctx context.Context) (*AdminOverview, error) {
	overview := &AdminOverview{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var resp struct {
			Students []types.User `json:"students"`
		}
		if err := c.do(gctx, http.MethodGet, "/api/admin/students", nil, &resp); err != nil {
			return err
		}
		overview.Students = resp.Students
		return nil
	})

	g.Go(func() error {
		var resp struct {
			Mentors []types.User `json:"mentors"`
		}
		if err := c.do(gctx, http.MethodGet, "/api/admin/mentors", nil, &resp); err != nil {
			return err
		}
		overview.Mentors = resp.Mentors
		return nil
	})

	g.Go(func() error {
		var resp struct {
			Assignments []types.MentorAssignment `json:"assignments"`
		}
		if err := c.do(gctx, http.MethodGet, "/api/admin/mentor-assignments", nil, &resp); err != nil {
			return err
		}
		overview.Assignments = resp.Assignments
		return nil
	})

	g.Go(func() error {
		ideas, categorized, err := c.PotentialIdeas(gctx)
		if err != nil {
			return err
		}
		overview.Ideas = ideas
		overview.Categorized = *categorized
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
