package coverage

import (
	"testing"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestEvaluateCoverage(t *testing.T) {
	tests := []struct {
		name      string
		summary   core.CoverageSummary
		threshold int
		want      *core.CoverageVerdict
	}{
		{
			"row report above threshold",
			core.RowBased{Missed: 10, Covered: 140},
			70,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictPass, Percentage: 93.33, Threshold: 70},
		},
		{
			"rate report below threshold",
			core.RateBased{LineRate: 0.65},
			70,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictBelowThreshold, Percentage: 65, Threshold: 70},
		},
		{
			"branch rate is reported, not gated",
			core.RateBased{LineRate: 0.75, BranchRate: 0.1, HasBranchRate: true},
			70,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictPass, Percentage: 75, BranchPercentage: floatPtr(10), Threshold: 70},
		},
		{
			"row branches are reported",
			core.RowBased{Missed: 1, Covered: 2, BranchMissed: 1, BranchCovered: 1, HasBranches: true},
			50,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictPass, Percentage: 66.67, BranchPercentage: floatPtr(50), Threshold: 50},
		},
		{
			"exactly at threshold passes",
			core.RowBased{Missed: 30, Covered: 70},
			70,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictPass, Percentage: 70, Threshold: 70},
		},
		{
			"nothing counted is zero percent",
			core.RowBased{},
			70,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictBelowThreshold, Percentage: 0, Threshold: 70},
		},
		{
			"zero threshold always passes",
			core.RowBased{},
			0,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictPass, Percentage: 0, Threshold: 0},
		},
		{
			"nil summary",
			nil,
			70,
			&core.CoverageVerdict{Service: "vets-service", Status: core.VerdictBelowThreshold, Percentage: 0, Threshold: 70},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCoverage("vets-service", tt.summary, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowPercent_monotonic(t *testing.T) {
	for _, missed := range []int64{0, 1, 7, 150, 10000} {
		prev := -1.0
		for covered := int64(0); covered <= 2000; covered += 13 {
			got := RowPercent(missed, covered)
			assert.GreaterOrEqual(t, got, prev, "missed=%d covered=%d", missed, covered)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
			prev = got
		}
	}
	assert.Equal(t, 0.0, RowPercent(0, 0))
}

func TestRatePercent(t *testing.T) {
	assert.Equal(t, 65.0, RatePercent(0.65))
	assert.Equal(t, 33.33, RatePercent(1.0/3))
	assert.Equal(t, 100.0, RatePercent(1))
	assert.Equal(t, 0.0, RatePercent(0))
}
