package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Potential categories assigned to an idea, either by a mentor or derived
// from the automated assessment.
const (
	PotentialHigh   = "High"
	PotentialMedium = "Medium"
	PotentialLow    = "Low"
)

// Comment is a single remark left on a project by a mentor or student.
type Comment struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	Visible   bool      `json:"visible"`
}

// FileData describes an uploaded supporting document.
type FileData struct {
	ID         uuid.UUID `json:"id,omitempty"`
	Name       string    `json:"name"`
	StoredName string    `json:"stored_name,omitempty"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// MentorRemarks holds a mentor's manual evaluation of a project.
type MentorRemarks struct {
	Score             float64 `json:"score" validate:"gte=0,lte=10"`
	PotentialCategory string  `json:"potentialCategory" validate:"omitempty,oneof=High Medium Low"`
	Remarks           string  `json:"remarks,omitempty"`
}

// Validate validates the mentor remarks payload.
func (m *MentorRemarks) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// ImprovementItem is a single actionable suggestion in an improvement report.
type ImprovementItem struct {
	Section        string `json:"section"`
	Priority       string `json:"priority"`
	CurrentIssue   string `json:"current_issue"`
	SpecificAction string `json:"specific_action"`
}

// Feedback is the structured improvement report generated for a submission.
type Feedback struct {
	OverallAssessment          string            `json:"overall_assessment"`
	HighPriorityImprovements   []ImprovementItem `json:"high_priority_improvements"`
	MediumPriorityImprovements []ImprovementItem `json:"medium_priority_improvements"`
	LowPriorityImprovements    []ImprovementItem `json:"low_priority_improvements"`
	NextStepsThisWeek          []string          `json:"next_steps_this_week"`
}

// LLMAnalysis is the flat assessment payload produced by the automated
// analyzer. Field names match the historical backend wire format.
type LLMAnalysis struct {
	MarketScore        float64  `json:"market_feasibility_score"`
	MarketFeedback     string   `json:"market_feasibility_feedback"`
	MarketBasis        string   `json:"market_feasibility_basis"`
	FinancialScore     float64  `json:"financial_feasibility_score"`
	FinancialFeedback  string   `json:"financial_feasibility_feedback"`
	FinancialBasis     string   `json:"financial_feasibility_basis"`
	TechnicalScore     float64  `json:"technical_feasibility_score"`
	TechnicalFeedback  string   `json:"technical_feasibility_feedback"`
	TechnicalBasis     string   `json:"technical_feasibility_basis"`
	OverallConfidence  float64  `json:"overall_confidence"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	PrioritizedActions []string `json:"prioritized_actions"`
	RedFlags           []string `json:"red_flags"`
	RiskAssessment     string   `json:"risk_assessment"`
	ExtractedKPIs      []string `json:"extracted_kpis"`
}

// SectionScore is a score plus narrative for one feasibility dimension.
type SectionScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	Basis    string  `json:"basis,omitempty"`
}

// StartupCosts breaks down one-time setup costs.
type StartupCosts struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// OperationalCosts breaks down recurring monthly costs.
type OperationalCosts struct {
	Monthly   float64            `json:"monthly"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// RevenueProjections holds five years of projected revenue.
type RevenueProjections struct {
	Year1 float64 `json:"year1"`
	Year2 float64 `json:"year2"`
	Year3 float64 `json:"year3"`
	Year4 float64 `json:"year4"`
	Year5 float64 `json:"year5"`
}

// FinancialFeasibility extends the section score with cost and revenue detail.
type FinancialFeasibility struct {
	Score              float64            `json:"score"`
	Feedback           string             `json:"feedback"`
	StartupCosts       StartupCosts       `json:"startupCosts"`
	OperationalCosts   OperationalCosts   `json:"operationalCosts"`
	RevenueProjections RevenueProjections `json:"revenueProjections"`
	FundingNeeds       string             `json:"fundingNeeds"`
	BreakEvenPoint     string             `json:"breakEvenPoint"`
}

// RiskAssessment summarizes identified risks and mitigations.
type RiskAssessment struct {
	Level      string   `json:"level"`
	Factors    []string `json:"factors"`
	Mitigation []string `json:"mitigation"`
}

// FeasibilityAnalysis is the nested, fully-defaulted feasibility view model
// the dashboard renders. Every leaf is always present.
type FeasibilityAnalysis struct {
	MarketFeasibility          SectionScore         `json:"marketFeasibility"`
	FinancialFeasibility       FinancialFeasibility `json:"financialFeasibility"`
	TechnicalFeasibility       SectionScore         `json:"technicalFeasibility"`
	OrganizationalFeasibility  SectionScore         `json:"organizationalFeasibility"`
	LegalRegulatoryFeasibility SectionScore         `json:"legalRegulatoryFeasibility"`
	RiskAssessment             RiskAssessment       `json:"riskAssessment"`
}

// Project is an idea submission with everything the review screens need.
type Project struct {
	ID                uuid.UUID            `json:"id"`
	StudentID         uuid.UUID            `json:"studentId"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Tags              []string             `json:"tags"`
	Overview          string               `json:"overview,omitempty"`
	Transcribe        []string             `json:"transcribe"`
	Files             []FileData           `json:"files,omitempty"`
	Feedback          *Feedback            `json:"feedback,omitempty"`
	LLMAnalysis       *LLMAnalysis         `json:"llmAnalysis,omitempty"`
	Feasibility       *FeasibilityAnalysis `json:"feasibility,omitempty"`
	Score             float64              `json:"score"`
	PotentialCategory string               `json:"potentialCategory,omitempty"`
	Remarks           string               `json:"remarks,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// StudentIdeas pairs a student with their submitted projects.
type StudentIdeas struct {
	Student  *User     `json:"student"`
	Projects []Project `json:"projects"`
}

// CategorizedIdeas buckets student ideas by assessed potential.
type CategorizedIdeas struct {
	Best     []StudentIdeas `json:"best"`
	Mediocre []StudentIdeas `json:"mediocre"`
	Low      []StudentIdeas `json:"low"`
}

// MentorAssignment links a student to their assigned mentor.
type MentorAssignment struct {
	StudentID  uuid.UUID `json:"studentId"`
	MentorID   uuid.UUID `json:"mentorId"`
	AssignedAt time.Time `json:"assigned_at"`
}
