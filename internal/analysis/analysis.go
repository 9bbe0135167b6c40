// Package analysis runs the automated assessment pipeline for idea
// submissions: a scored assessment, a structured feasibility study and an
// improvement report, all generated by the model and schema-validated
// before anything is persisted.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ananya/ideahub/internal/db"
	"github.com/ananya/ideahub/internal/llm"
	"github.com/ananya/ideahub/internal/normalize"
	"github.com/ananya/ideahub/internal/prompts"
	"github.com/ananya/ideahub/internal/schemas"
	"github.com/ananya/ideahub/internal/types"
)

// Confidence thresholds mapping overall_confidence to a potential category.
const (
	highConfidenceThreshold = 0.75
	lowConfidenceThreshold  = 0.4
)

// Error describes a failed assessment stage.
type Error struct {
	Stage   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis %s: %s", e.Stage, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result holds the raw payloads produced by one assessment run. The raw
// bytes are stored verbatim; normalization happens when they are read back.
type Result struct {
	RawAnalysis       []byte
	RawFeasibility    []byte
	RawFeedback       []byte
	PotentialCategory string
}

// Analyzer generates assessments for submitted ideas.
type Analyzer struct {
	client llm.Client
}

// New creates an Analyzer backed by the default model configuration.
func New(ctx context.Context, apiKey string) (*Analyzer, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, &Error{Stage: "init", Message: "failed to create model client", Cause: err}
	}
	return &Analyzer{client: client}, nil
}

// NewWithClient creates an Analyzer with an explicit model client.
func NewWithClient(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Close releases the underlying model client.
func (a *Analyzer) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// Analyze runs the full pipeline for one submission. The assessment stage
// must succeed; feasibility and feedback failures degrade gracefully so a
// partial result still reaches mentors.
func (a *Analyzer) Analyze(ctx context.Context, project *db.Project) (*Result, error) {
	transcript := strings.Join(normalize.Transcribe(project.Transcribe), "\n")

	rawAnalysis, err := a.generateAssessment(ctx, project, transcript)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RawAnalysis:       rawAnalysis,
		PotentialCategory: categoryFromAssessment(rawAnalysis),
	}

	if raw, err := a.generateFeasibility(ctx, project, transcript); err == nil {
		result.RawFeasibility = raw
	}
	if raw, err := a.generateFeedback(ctx, project, rawAnalysis); err == nil {
		result.RawFeedback = raw
	}

	return result, nil
}

func (a *Analyzer) generateAssessment(ctx context.Context, project *db.Project, transcript string) ([]byte, error) {
	template, err := prompts.Get("assess-idea")
	if err != nil {
		return nil, &Error{Stage: "assessment", Message: "prompt unavailable", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{
		"Title":       project.Title,
		"Description": project.Description,
		"Transcript":  transcript,
	})

	out, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Stage: "assessment", Message: "generation failed", Cause: err}
	}
	if err := schemas.ValidateAnalysis(out); err != nil {
		return nil, &Error{Stage: "assessment", Message: "payload failed schema validation", Cause: err}
	}
	return []byte(out), nil
}

func (a *Analyzer) generateFeasibility(ctx context.Context, project *db.Project, transcript string) ([]byte, error) {
	template, err := prompts.Get("feasibility-study")
	if err != nil {
		return nil, &Error{Stage: "feasibility", Message: "prompt unavailable", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{
		"Title":       project.Title,
		"Description": project.Description,
		"Transcript":  transcript,
	})

	out, err := a.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &Error{Stage: "feasibility", Message: "generation failed", Cause: err}
	}

	// The feasibility payload tolerates partial sections, so only require
	// that the normalizer recognizes the market section.
	if _, prov := normalize.Feasibility([]byte(out)); prov.Market != normalize.SourceValid {
		return nil, &Error{Stage: "feasibility", Message: "unrecognized payload shape"}
	}
	return []byte(out), nil
}

func (a *Analyzer) generateFeedback(ctx context.Context, project *db.Project, rawAnalysis []byte) ([]byte, error) {
	template, err := prompts.Get("improvement-report")
	if err != nil {
		return nil, &Error{Stage: "feedback", Message: "prompt unavailable", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{
		"Title":      project.Title,
		"Assessment": string(rawAnalysis),
	})

	out, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Stage: "feedback", Message: "generation failed", Cause: err}
	}
	if err := schemas.ValidateFeedback(out); err != nil {
		return nil, &Error{Stage: "feedback", Message: "payload failed schema validation", Cause: err}
	}
	return []byte(out), nil
}

// categoryFromAssessment derives a potential category from the assessment's
// overall confidence. Submissions already scored by a mentor keep the
// mentor's category; that guard lives in the database update.
func categoryFromAssessment(rawAnalysis []byte) string {
	var payload struct {
		OverallConfidence float64 `json:"overall_confidence"`
	}
	if err := json.Unmarshal(rawAnalysis, &payload); err != nil {
		return ""
	}
	switch {
	case payload.OverallConfidence >= highConfidenceThreshold:
		return types.PotentialHigh
	case payload.OverallConfidence < lowConfidenceThreshold:
		return types.PotentialLow
	default:
		return types.PotentialMedium
	}
}
