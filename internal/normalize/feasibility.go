package normalize

import (
	"github.com/ananya/ideahub/internal/types"
)

// Revenue projection multipliers applied to year one when later years are
// not reported by the analyzer.
var revenueMultipliers = [4]float64{1.1, 1.2, 1.3, 1.5}

// Source records where a feasibility section's data came from.
type Source int

// Section provenance values.
const (
	// SourceAbsent means the payload carried no data for the section.
	SourceAbsent Source = iota
	// SourceInvalid means data was present but not in a usable shape.
	SourceInvalid
	// SourceValid means the section decoded cleanly.
	SourceValid
)

// Provenance reports, per feasibility section, whether the rendered value
// came from real payload data. Callers use it to distinguish "scored zero"
// from "no data".
type Provenance struct {
	Market         Source
	Financial      Source
	Technical      Source
	Organizational Source
	Legal          Source
	Risk           Source
}

// Feasibility normalizes an analysis payload into the nested view model.
// Two historical wire shapes are recognized and decoded explicitly:
//
//   - the flat shape with snake_case keys such as market_feasibility_score
//     and an extracted_kpis string list
//   - the nested camelCase shape keyed by marketFeasibility,
//     financialFeasibility and friends
//
// Unrecognizable input yields a fully-zeroed analysis with every section
// marked absent. The function never panics and every leaf of the result is
// defined.
func Feasibility(v any) (types.FeasibilityAnalysis, Provenance) {
	out := emptyFeasibility()
	prov := Provenance{}

	m := asMap(decodeAny(v))
	if m == nil {
		return out, prov
	}

	if isNestedShape(m) {
		decodeNested(m, &out, &prov)
	} else if isFlatShape(m) {
		decodeFlat(m, &out, &prov)
	} else {
		return out, prov
	}

	deriveRevenue(&out.FinancialFeasibility.RevenueProjections)
	return out, prov
}

// emptyFeasibility returns an analysis with every collection leaf allocated.
func emptyFeasibility() types.FeasibilityAnalysis {
	return types.FeasibilityAnalysis{
		FinancialFeasibility: types.FinancialFeasibility{
			StartupCosts:     types.StartupCosts{Breakdown: map[string]float64{}},
			OperationalCosts: types.OperationalCosts{Breakdown: map[string]float64{}},
		},
		RiskAssessment: types.RiskAssessment{
			Factors:    []string{},
			Mitigation: []string{},
		},
	}
}

// isNestedShape reports whether the payload uses the camelCase section keys.
func isNestedShape(m map[string]any) bool {
	_, ok := firstKey(m,
		"marketFeasibility", "financialFeasibility", "technicalFeasibility",
		"organizationalFeasibility", "legalRegulatoryFeasibility")
	return ok
}

// isFlatShape reports whether the payload uses the flat snake_case keys.
func isFlatShape(m map[string]any) bool {
	_, ok := firstKey(m,
		"market_feasibility_score", "financial_feasibility_score",
		"technical_feasibility_score", "market_feasibility", "market",
		"extracted_kpis", "overall_confidence")
	return ok
}

// decodeNested fills the view model from the camelCase shape.
func decodeNested(m map[string]any, out *types.FeasibilityAnalysis, prov *Provenance) {
	out.MarketFeasibility, prov.Market = decodeSection(m, "marketFeasibility", "market")
	out.TechnicalFeasibility, prov.Technical = decodeSection(m, "technicalFeasibility", "technical")
	out.OrganizationalFeasibility, prov.Organizational = decodeSection(m, "organizationalFeasibility", "organizational")
	out.LegalRegulatoryFeasibility, prov.Legal = decodeSection(m, "legalRegulatoryFeasibility", "legalRegulatory")

	finVal, ok := firstKey(m, "financialFeasibility", "financial")
	if !ok {
		prov.Financial = SourceAbsent
	} else if fin := asMap(finVal); fin == nil {
		prov.Financial = SourceInvalid
	} else {
		prov.Financial = SourceValid
		out.FinancialFeasibility.Score, _ = asFloat(fin["score"])
		out.FinancialFeasibility.Feedback = asString(fin["feedback"])
		out.FinancialFeasibility.FundingNeeds = asString(fin["fundingNeeds"])
		out.FinancialFeasibility.BreakEvenPoint = asString(fin["breakEvenPoint"])
		if sc := asMap(fin["startupCosts"]); sc != nil {
			out.FinancialFeasibility.StartupCosts.Total, _ = asFloat(sc["total"])
			out.FinancialFeasibility.StartupCosts.Breakdown = asFloatMap(sc["breakdown"])
		}
		if oc := asMap(fin["operationalCosts"]); oc != nil {
			out.FinancialFeasibility.OperationalCosts.Monthly, _ = asFloat(oc["monthly"])
			out.FinancialFeasibility.OperationalCosts.Breakdown = asFloatMap(oc["breakdown"])
		}
		if rp := asMap(fin["revenueProjections"]); rp != nil {
			out.FinancialFeasibility.RevenueProjections.Year1, _ = asFloat(rp["year1"])
			out.FinancialFeasibility.RevenueProjections.Year2, _ = asFloat(rp["year2"])
			out.FinancialFeasibility.RevenueProjections.Year3, _ = asFloat(rp["year3"])
			out.FinancialFeasibility.RevenueProjections.Year4, _ = asFloat(rp["year4"])
			out.FinancialFeasibility.RevenueProjections.Year5, _ = asFloat(rp["year5"])
		}
	}

	riskVal, ok := firstKey(m, "riskAssessment", "risk")
	if !ok {
		prov.Risk = SourceAbsent
	} else if risk := asMap(riskVal); risk != nil {
		prov.Risk = SourceValid
		out.RiskAssessment.Level = asString(risk["level"])
		out.RiskAssessment.Factors = asStringSlice(risk["factors"])
		out.RiskAssessment.Mitigation = asStringSlice(risk["mitigation"])
	} else if s := asString(riskVal); s != "" {
		prov.Risk = SourceValid
		out.RiskAssessment.Level = s
	} else {
		prov.Risk = SourceInvalid
	}
}

// decodeSection reads one camelCase section, accepting either the primary
// key or its short alternate.
func decodeSection(m map[string]any, keys ...string) (types.SectionScore, Source) {
	val, ok := firstKey(m, keys...)
	if !ok {
		return types.SectionScore{}, SourceAbsent
	}
	section := asMap(val)
	if section == nil {
		return types.SectionScore{}, SourceInvalid
	}
	score, _ := asFloat(section["score"])
	return types.SectionScore{
		Score:    score,
		Feedback: asString(section["feedback"]),
		Basis:    asString(section["basis"]),
	}, SourceValid
}

// decodeFlat fills the view model from the flat snake_case shape. Financial
// detail is reconstructed from the extracted KPI lines.
func decodeFlat(m map[string]any, out *types.FeasibilityAnalysis, prov *Provenance) {
	out.MarketFeasibility, prov.Market = decodeFlatSection(m, "market")
	out.TechnicalFeasibility, prov.Technical = decodeFlatSection(m, "technical")

	finSection, finSource := decodeFlatSection(m, "financial")
	prov.Financial = finSource
	out.FinancialFeasibility.Score = finSection.Score
	out.FinancialFeasibility.Feedback = finSection.Feedback

	kpis := asStringSlice(m["extracted_kpis"])
	if total, ok := kpiLookup(kpis, "setup cost", "startup cost", "initial investment"); ok {
		out.FinancialFeasibility.StartupCosts.Total = float64(total)
	}
	if monthly, ok := kpiLookup(kpis, "monthly", "operational cost", "operating cost"); ok {
		out.FinancialFeasibility.OperationalCosts.Monthly = float64(monthly)
	}
	if revenue, ok := kpiLookup(kpis, "revenue"); ok {
		out.FinancialFeasibility.RevenueProjections.Year1 = float64(revenue)
	}

	// The flat shape never carries organizational or legal sections.
	prov.Organizational = SourceAbsent
	prov.Legal = SourceAbsent

	if risk := asString(m["risk_assessment"]); risk != "" {
		out.RiskAssessment.Level = risk
		prov.Risk = SourceValid
	} else if _, present := m["risk_assessment"]; present {
		prov.Risk = SourceInvalid
	} else {
		prov.Risk = SourceAbsent
	}
}

// decodeFlatSection reads one section of the flat shape, trying the
// <name>_feasibility_* keys first and then nested alternates.
func decodeFlatSection(m map[string]any, name string) (types.SectionScore, Source) {
	section := types.SectionScore{}
	found := false
	invalid := false

	if val, ok := m[name+"_feasibility_score"]; ok {
		found = true
		if score, scoreOK := asFloat(val); scoreOK {
			section.Score = score
		} else {
			invalid = true
		}
	}
	section.Feedback = asString(m[name+"_feasibility_feedback"])
	section.Basis = asString(m[name+"_feasibility_basis"])
	if section.Feedback != "" || section.Basis != "" {
		found = true
	}

	// Alternate path: a nested object under market_feasibility or market.
	if !found {
		if val, ok := firstKey(m, name+"_feasibility", name); ok {
			if nested := asMap(val); nested != nil {
				section.Score, _ = asFloat(nested["score"])
				section.Feedback = asString(nested["feedback"])
				section.Basis = asString(nested["basis"])
				return section, SourceValid
			}
			return section, SourceInvalid
		}
		return section, SourceAbsent
	}

	if invalid && section.Feedback == "" && section.Basis == "" {
		return section, SourceInvalid
	}
	return section, SourceValid
}

// deriveRevenue fills years two through five from year one when the payload
// reported only the first year.
func deriveRevenue(rp *types.RevenueProjections) {
	if rp.Year1 <= 0 {
		return
	}
	if rp.Year2 != 0 || rp.Year3 != 0 || rp.Year4 != 0 || rp.Year5 != 0 {
		return
	}
	rp.Year2 = rp.Year1 * revenueMultipliers[0]
	rp.Year3 = rp.Year1 * revenueMultipliers[1]
	rp.Year4 = rp.Year1 * revenueMultipliers[2]
	rp.Year5 = rp.Year1 * revenueMultipliers[3]
}
