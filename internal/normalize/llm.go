package normalize

import (
	"github.com/ananya/ideahub/internal/types"
)

// LLMAnalysis normalizes a stored automated-assessment payload into the flat
// view model. Missing fields default to zero or empty slices; the slices are
// always non-nil so templates can range over them directly.
func LLMAnalysis(v any) types.LLMAnalysis {
	out := types.LLMAnalysis{
		Strengths:          []string{},
		Weaknesses:         []string{},
		PrioritizedActions: []string{},
		RedFlags:           []string{},
		ExtractedKPIs:      []string{},
	}

	m := asMap(decodeAny(v))
	if m == nil {
		return out
	}

	out.MarketScore, _ = asFloat(m["market_feasibility_score"])
	out.MarketFeedback = asString(m["market_feasibility_feedback"])
	out.MarketBasis = asString(m["market_feasibility_basis"])
	out.FinancialScore, _ = asFloat(m["financial_feasibility_score"])
	out.FinancialFeedback = asString(m["financial_feasibility_feedback"])
	out.FinancialBasis = asString(m["financial_feasibility_basis"])
	out.TechnicalScore, _ = asFloat(m["technical_feasibility_score"])
	out.TechnicalFeedback = asString(m["technical_feasibility_feedback"])
	out.TechnicalBasis = asString(m["technical_feasibility_basis"])
	out.OverallConfidence, _ = asFloat(m["overall_confidence"])
	out.Strengths = asStringSlice(m["strengths"])
	out.Weaknesses = asStringSlice(m["weaknesses"])
	out.PrioritizedActions = asStringSlice(m["prioritized_actions"])
	out.RedFlags = asStringSlice(m["red_flags"])
	out.RiskAssessment = asString(m["risk_assessment"])
	out.ExtractedKPIs = asStringSlice(m["extracted_kpis"])

	return out
}

// Feedback normalizes a stored improvement-report payload. Unrecognizable
// input yields an empty report with allocated slices.
func Feedback(v any) types.Feedback {
	out := types.Feedback{
		HighPriorityImprovements:   []types.ImprovementItem{},
		MediumPriorityImprovements: []types.ImprovementItem{},
		LowPriorityImprovements:    []types.ImprovementItem{},
		NextStepsThisWeek:          []string{},
	}

	m := asMap(decodeAny(v))
	if m == nil {
		return out
	}

	out.OverallAssessment = asString(m["overall_assessment"])
	out.HighPriorityImprovements = improvementItems(m["high_priority_improvements"])
	out.MediumPriorityImprovements = improvementItems(m["medium_priority_improvements"])
	out.LowPriorityImprovements = improvementItems(m["low_priority_improvements"])
	out.NextStepsThisWeek = asStringSlice(m["next_steps_this_week"])

	return out
}

// improvementItems decodes one priority bucket of an improvement report.
// Bare strings become items with only a specific action.
func improvementItems(v any) []types.ImprovementItem {
	out := []types.ImprovementItem{}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	for _, elem := range arr {
		if m := asMap(elem); m != nil {
			out = append(out, types.ImprovementItem{
				Section:        asString(m["section"]),
				Priority:       asString(m["priority"]),
				CurrentIssue:   asString(m["current_issue"]),
				SpecificAction: asString(m["specific_action"]),
			})
			continue
		}
		if s := asString(elem); s != "" {
			out = append(out, types.ImprovementItem{SpecificAction: s})
		}
	}
	return out
}
