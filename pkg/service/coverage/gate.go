package coverage

import (
	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
)

// RowPercent is covered*100/(missed+covered) rounded to 2 decimals, 0 when nothing was counted.
func RowPercent(missed, covered int64) float64 {
	total := missed + covered
	if total == 0 {
		return 0
	}
	return core.RoundPercent(float64(covered) * 100 / float64(total))
}

// RatePercent turns a 0..1 rate into a percentage rounded to 2 decimals.
func RatePercent(rate float64) float64 {
	return core.RoundPercent(rate * 100)
}

// Percentages returns the gated percentage and the branch percentage if the report has one.
func Percentages(summary core.CoverageSummary) (float64, *float64) {
	switch s := summary.(type) {
	case core.RowBased:
		if !s.HasBranches {
			return RowPercent(s.Missed, s.Covered), nil
		}
		branch := RowPercent(s.BranchMissed, s.BranchCovered)
		return RowPercent(s.Missed, s.Covered), &branch
	case core.RateBased:
		if !s.HasBranchRate {
			return RatePercent(s.LineRate), nil
		}
		branch := RatePercent(s.BranchRate)
		return RatePercent(s.LineRate), &branch
	default:
		return 0, nil
	}
}

// EvaluateCoverage compares the line (or instruction) percentage of summary against threshold.
// Branch coverage is reported but never gated.
func EvaluateCoverage(service string, summary core.CoverageSummary, threshold int) *core.CoverageVerdict {
	percentage, branch := Percentages(summary)
	status := core.VerdictPass
	if percentage < float64(threshold) {
		status = core.VerdictBelowThreshold
	}
	return &core.CoverageVerdict{
		Service:          service,
		Status:           status,
		Percentage:       percentage,
		BranchPercentage: branch,
		Threshold:        threshold,
	}
}
