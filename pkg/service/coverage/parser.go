package coverage

import (
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
)

// jacoco csv columns
const (
	colInstructionMissed  = 3
	colInstructionCovered = 4
	colBranchMissed       = 5
	colBranchCovered      = 6
)

type coberturaRates struct {
	LineRate   *float64 `xml:"line-rate,attr"`
	BranchRate *float64 `xml:"branch-rate,attr"`
}

type coberturaReport struct {
	XMLName    xml.Name        `xml:"coverage"`
	LineRate   *float64        `xml:"line-rate,attr"`
	BranchRate *float64        `xml:"branch-rate,attr"`
	Metrics    *coberturaRates `xml:"metrics"`
}

// ParseRowReport sums the instruction (and branch, when present) counters of every data row.
// The first row is the header.
func ParseRowReport(r io.Reader) (core.RowBased, error) {
	var summary core.RowBased
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return core.RowBased{}, fmt.Errorf("%w: row %d: %v", errs.ErrMalformedReport, row, err)
		}
		if row == 1 {
			summary.HasBranches = len(record) > colBranchCovered
			continue
		}
		if len(record) <= colInstructionCovered {
			return core.RowBased{}, fmt.Errorf("%w: row %d has %d columns", errs.ErrMalformedReport, row, len(record))
		}
		missed, err := parseCounter(record[colInstructionMissed])
		if err != nil {
			return core.RowBased{}, fmt.Errorf("%w: row %d: %v", errs.ErrMalformedReport, row, err)
		}
		covered, err := parseCounter(record[colInstructionCovered])
		if err != nil {
			return core.RowBased{}, fmt.Errorf("%w: row %d: %v", errs.ErrMalformedReport, row, err)
		}
		summary.Missed += missed
		summary.Covered += covered

		if !summary.HasBranches {
			continue
		}
		if len(record) <= colBranchCovered {
			summary.HasBranches = false
			continue
		}
		bMissed, err := parseCounter(record[colBranchMissed])
		if err != nil {
			return core.RowBased{}, fmt.Errorf("%w: row %d: %v", errs.ErrMalformedReport, row, err)
		}
		bCovered, err := parseCounter(record[colBranchCovered])
		if err != nil {
			return core.RowBased{}, fmt.Errorf("%w: row %d: %v", errs.ErrMalformedReport, row, err)
		}
		summary.BranchMissed += bMissed
		summary.BranchCovered += bCovered
	}
	if !summary.HasBranches {
		summary.BranchMissed, summary.BranchCovered = 0, 0
	}
	return summary, nil
}

func parseCounter(field string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative counter %d", v)
	}
	return v, nil
}

// ParseRateReport reads the line and branch rates of a cobertura style report.
// Rates are read from the metrics element, falling back to the root element attributes.
func ParseRateReport(r io.Reader) (core.RateBased, error) {
	var report coberturaReport
	if err := xml.NewDecoder(r).Decode(&report); err != nil {
		return core.RateBased{}, fmt.Errorf("%w: %v", errs.ErrMalformedReport, err)
	}
	rates := coberturaRates{LineRate: report.LineRate, BranchRate: report.BranchRate}
	if report.Metrics != nil {
		if report.Metrics.LineRate != nil {
			rates.LineRate = report.Metrics.LineRate
		}
		if report.Metrics.BranchRate != nil {
			rates.BranchRate = report.Metrics.BranchRate
		}
	}
	if rates.LineRate == nil {
		return core.RateBased{}, fmt.Errorf("%w: line-rate attribute not found", errs.ErrMalformedReport)
	}

	summary := core.RateBased{LineRate: *rates.LineRate}
	if err := checkRate("line-rate", summary.LineRate); err != nil {
		return core.RateBased{}, err
	}
	if rates.BranchRate != nil {
		summary.BranchRate = *rates.BranchRate
		summary.HasBranchRate = true
		if err := checkRate("branch-rate", summary.BranchRate); err != nil {
			return core.RateBased{}, err
		}
	}
	return summary, nil
}

func checkRate(name string, rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return fmt.Errorf("%w: %s %v outside [0,1]", errs.ErrMalformedReport, name, rate)
	}
	return nil
}

// DetectFormat resolves ReportAuto from the report file extension.
func DetectFormat(path string, format core.ReportFormat) (core.ReportFormat, error) {
	switch format {
	case core.ReportCSV, core.ReportXML:
		return format, nil
	case core.ReportAuto, "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			return core.ReportCSV, nil
		case ".xml":
			return core.ReportXML, nil
		}
		return "", errs.ErrUnsupportedReportFormat(filepath.Ext(path))
	default:
		return "", errs.ErrUnsupportedReportFormat(string(format))
	}
}

// ReadReport opens and parses the report at path.
// A report that does not exist yields an error wrapping errs.ErrMissingReport.
func ReadReport(path string, format core.ReportFormat) (core.CoverageSummary, error) {
	format, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingReport, path)
		}
		return nil, err
	}
	defer f.Close()

	if format == core.ReportCSV {
		return ParseRowReport(f)
	}
	return ParseRateReport(f)
}
