package coverage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowReport(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		want    core.RowBased
		wantErr bool
	}{
		{
			"instruction columns only",
			"GROUP,PACKAGE,CLASS,INSTRUCTION_MISSED,INSTRUCTION_COVERED\ng,p,A,10,90\ng,p,B,0,50\n",
			core.RowBased{Missed: 10, Covered: 140},
			false,
		},
		{
			"with branch columns",
			"GROUP,PACKAGE,CLASS,INSTRUCTION_MISSED,INSTRUCTION_COVERED,BRANCH_MISSED,BRANCH_COVERED\ng,p,A,1,3,2,2\ng,p,B,1,1,0,4\n",
			core.RowBased{Missed: 2, Covered: 4, BranchMissed: 2, BranchCovered: 6, HasBranches: true},
			false,
		},
		{
			"header only",
			"GROUP,PACKAGE,CLASS,INSTRUCTION_MISSED,INSTRUCTION_COVERED\n",
			core.RowBased{},
			false,
		},
		{
			"empty report",
			"",
			core.RowBased{},
			false,
		},
		{
			"extra spaces around counters",
			"h0,h1,h2,h3,h4\ng,p,A, 5 , 15\n",
			core.RowBased{Missed: 5, Covered: 15},
			false,
		},
		{"short row", "h0,h1,h2,h3,h4\ng,p,A,1\n", core.RowBased{}, true},
		{"non numeric counter", "h0,h1,h2,h3,h4\ng,p,A,x,1\n", core.RowBased{}, true},
		{"negative counter", "h0,h1,h2,h3,h4\ng,p,A,-1,1\n", core.RowBased{}, true},
		{"broken quoting", "h0,h1,h2,h3,h4\ng,\"p,A,1,1\n", core.RowBased{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRowReport(strings.NewReader(tt.report))
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrMalformedReport), "expected malformed report, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRateReport(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		want    core.RateBased
		wantErr bool
	}{
		{
			"metrics element",
			`<coverage><metrics line-rate="0.65" branch-rate="0.5"/></coverage>`,
			core.RateBased{LineRate: 0.65, BranchRate: 0.5, HasBranchRate: true},
			false,
		},
		{
			"root attributes",
			`<coverage line-rate="0.8" branch-rate="0.25" version="2.1.1"><packages/></coverage>`,
			core.RateBased{LineRate: 0.8, BranchRate: 0.25, HasBranchRate: true},
			false,
		},
		{
			"metrics win over root",
			`<coverage line-rate="0.1"><metrics line-rate="0.9"/></coverage>`,
			core.RateBased{LineRate: 0.9},
			false,
		},
		{
			"root branch rate kept when metrics omit it",
			`<coverage line-rate="0.5" branch-rate="0.4"><metrics line-rate="0.65"/></coverage>`,
			core.RateBased{LineRate: 0.65, BranchRate: 0.4, HasBranchRate: true},
			false,
		},
		{
			"root line rate kept when metrics omit it",
			`<coverage line-rate="0.5"><metrics branch-rate="0.3"/></coverage>`,
			core.RateBased{LineRate: 0.5, BranchRate: 0.3, HasBranchRate: true},
			false,
		},
		{"no line rate", `<coverage><metrics branch-rate="0.5"/></coverage>`, core.RateBased{}, true},
		{"rate above one", `<coverage><metrics line-rate="1.5"/></coverage>`, core.RateBased{}, true},
		{"wrong root", `<report><metrics line-rate="0.5"/></report>`, core.RateBased{}, true},
		{"not xml", `line-rate=0.5`, core.RateBased{}, true},
		{"bad number", `<coverage><metrics line-rate="high"/></coverage>`, core.RateBased{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRateReport(strings.NewReader(tt.report))
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrMalformedReport), "expected malformed report, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		format  core.ReportFormat
		want    core.ReportFormat
		wantErr bool
	}{
		{"target/site/jacoco/jacoco.csv", core.ReportAuto, core.ReportCSV, false},
		{"target/site/cobertura/coverage.XML", "", core.ReportXML, false},
		{"report.txt", core.ReportCSV, core.ReportCSV, false},
		{"report.txt", core.ReportAuto, "", true},
		{"report.csv", "lcov", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.format), func(t *testing.T) {
			got, err := DetectFormat(tt.path, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadReport(t *testing.T) {
	summary, err := ReadReport(filepath.Join("testdata", "jacoco.csv"), core.ReportAuto)
	require.NoError(t, err)
	assert.Equal(t, core.RowBased{Missed: 10, Covered: 140, BranchMissed: 1, BranchCovered: 3, HasBranches: true}, summary)

	summary, err = ReadReport(filepath.Join("testdata", "cobertura.xml"), core.ReportAuto)
	require.NoError(t, err)
	assert.Equal(t, core.RateBased{LineRate: 0.65, BranchRate: 0.5, HasBranchRate: true}, summary)

	_, err = ReadReport(filepath.Join("testdata", "absent.csv"), core.ReportAuto)
	assert.True(t, errors.Is(err, errs.ErrMissingReport))
	assert.False(t, errors.Is(err, errs.ErrMalformedReport))
}
