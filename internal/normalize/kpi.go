package normalize

import (
	"strconv"
	"strings"
)

// KPIAmount extracts a monetary amount from a KPI line such as
// "Total business setup cost: Rs. 4,10,000". Everything after the last
// colon is scanned and its digits concatenated, so Indian-style comma
// grouping parses the same as western grouping. Returns false when the
// string carries no digits.
func KPIAmount(s string) (int64, bool) {
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// kpiLookup finds the first KPI line whose text contains any of the given
// labels (case-insensitive) and returns its amount.
func kpiLookup(kpis []string, labels ...string) (int64, bool) {
	for _, kpi := range kpis {
		lower := strings.ToLower(kpi)
		for _, label := range labels {
			if strings.Contains(lower, label) {
				if n, ok := KPIAmount(kpi); ok {
					return n, true
				}
			}
		}
	}
	return 0, false
}
