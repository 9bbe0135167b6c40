package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ananya/ideahub/internal/db"
	"github.com/ananya/ideahub/internal/llm"
	"github.com/ananya/ideahub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned responses keyed by a prompt substring.
type fakeClient struct {
	responses map[string]string
	err       error
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for marker, response := range f.responses {
		if strings.Contains(prompt, marker) {
			return response, nil
		}
	}
	return "", errors.New("no canned response")
}

func (f *fakeClient) Close() error { return nil }

const validAssessment = `{
	"market_feasibility_score": 8,
	"market_feasibility_feedback": "Clear demand in rural cold chains.",
	"financial_feasibility_score": 6,
	"technical_feasibility_score": 7,
	"overall_confidence": 0.8,
	"strengths": ["strong customer evidence"],
	"weaknesses": ["thin financials"],
	"extracted_kpis": ["Setup cost: Rs. 4,10,000"]
}`

const validFeasibility = `{
	"marketFeasibility": {"score": 8, "feedback": "Strong demand", "basis": "farmer interviews"},
	"financialFeasibility": {"score": 6, "startupCosts": {"total": 410000}},
	"technicalFeasibility": {"score": 7, "feedback": "Proven hardware"},
	"riskAssessment": {"level": "Medium", "factors": ["monsoon downtime"], "mitigation": ["battery backup"]}
}`

const validFeedback = `{
	"high_priority_improvements": [
		{"section": "financials", "priority": "high", "current_issue": "no cash flow model", "specific_action": "Build a 12 month cash flow sheet."}
	],
	"medium_priority_improvements": [],
	"low_priority_improvements": [],
	"next_steps_this_week": ["Interview five farmers"]
}`

func testProject() *db.Project {
	return &db.Project{
		Title:       "Solar Cold Storage",
		Description: "Affordable refrigeration for rural farmers.",
		Transcribe:  []byte(`["We charge per crate","Setup cost: Rs. 4,10,000"]`),
	}
}

func TestAnalyze_FullPipeline(t *testing.T) {
	analyzer := NewWithClient(&fakeClient{responses: map[string]string{
		"startup evaluator": validAssessment,
		"feasibility study": validFeasibility,
		"improvement plan":  validFeedback,
	}})

	result, err := analyzer.Analyze(context.Background(), testProject())
	require.NoError(t, err)

	assert.JSONEq(t, validAssessment, string(result.RawAnalysis))
	assert.JSONEq(t, validFeasibility, string(result.RawFeasibility))
	assert.JSONEq(t, validFeedback, string(result.RawFeedback))
	assert.Equal(t, types.PotentialHigh, result.PotentialCategory)
}

func TestAnalyze_AssessmentFailureIsFatal(t *testing.T) {
	analyzer := NewWithClient(&fakeClient{err: errors.New("model unavailable")})

	_, err := analyzer.Analyze(context.Background(), testProject())
	require.Error(t, err)

	var analysisErr *Error
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, "assessment", analysisErr.Stage)
}

func TestAnalyze_InvalidAssessmentRejected(t *testing.T) {
	analyzer := NewWithClient(&fakeClient{responses: map[string]string{
		"startup evaluator": `{"market_feasibility_score": 99}`,
	}})

	_, err := analyzer.Analyze(context.Background(), testProject())
	require.Error(t, err)

	var analysisErr *Error
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, "assessment", analysisErr.Stage)
}

func TestAnalyze_PartialResultWithoutFeasibility(t *testing.T) {
	analyzer := NewWithClient(&fakeClient{responses: map[string]string{
		"startup evaluator": validAssessment,
		"feasibility study": `{"unexpected": true}`,
		"improvement plan":  validFeedback,
	}})

	result, err := analyzer.Analyze(context.Background(), testProject())
	require.NoError(t, err)
	assert.Nil(t, result.RawFeasibility)
	assert.NotNil(t, result.RawFeedback)
}

func TestCategoryFromAssessment(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		expected   string
	}{
		{name: "high confidence", confidence: 0.9, expected: types.PotentialHigh},
		{name: "threshold high", confidence: 0.75, expected: types.PotentialHigh},
		{name: "middle", confidence: 0.5, expected: types.PotentialMedium},
		{name: "low", confidence: 0.2, expected: types.PotentialLow},
		{name: "just below low threshold", confidence: 0.39, expected: types.PotentialLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(map[string]float64{"overall_confidence": tt.confidence})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, categoryFromAssessment(raw))
		})
	}
}

func TestCategoryFromAssessment_Malformed(t *testing.T) {
	assert.Empty(t, categoryFromAssessment([]byte("not json")))
}
