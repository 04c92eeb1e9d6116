// Package coverage implements the coverage gate: it finds, parses and judges the coverage report of a service
package coverage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/bmatcuk/doublestar/v4"
)

type codeCoverageService struct {
	logger  lumber.Logger
	repoDir string
	report  core.ReportConfig
}

// New returns a new instance of CoverageService
func New(repoDir string, report core.ReportConfig, logger lumber.Logger) core.CoverageService {
	return &codeCoverageService{
		logger:  logger,
		repoDir: repoDir,
		report:  report,
	}
}

// Evaluate locates, parses and gates the coverage report of service
func (c *codeCoverageService) Evaluate(ctx context.Context, service core.ServiceEntry, threshold int) (*core.CoverageVerdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reportPath, err := c.locateReport(service)
	if err != nil {
		c.logger.Warnf("coverage report %s not found for service %s", c.report.Path, service.Name)
		return nil, err
	}
	c.logger.Debugf("reading coverage report %s for service %s", reportPath, service.Name)

	summary, err := ReadReport(reportPath, c.report.Format)
	if err != nil {
		c.logger.Errorf("failed to read coverage report %s, error: %v", reportPath, err)
		return nil, err
	}

	verdict := EvaluateCoverage(service.Name, summary, threshold)
	verdict.ReportPath = reportPath
	if verdict.Status == core.VerdictBelowThreshold {
		c.logger.Warnf("coverage for %s is %.2f%%, below threshold %d%%", service.Name, verdict.Percentage, threshold)
	} else {
		c.logger.Infof("coverage for %s is %.2f%%, threshold %d%%", service.Name, verdict.Percentage, threshold)
	}
	return verdict, nil
}

// locateReport resolves the report path pattern inside the service directory.
func (c *codeCoverageService) locateReport(service core.ServiceEntry) (string, error) {
	serviceDir := filepath.Join(c.repoDir, service.Directory())
	matches, err := doublestar.Glob(os.DirFS(serviceDir), c.report.Path)
	if err != nil {
		return "", fmt.Errorf("invalid report path %q: %w", c.report.Path, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", errs.ErrMissingReport, filepath.Join(serviceDir, c.report.Path))
	}
	// several modules can write a report, the shortest path is the aggregate one
	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) < len(matches[j])
		}
		return matches[i] < matches[j]
	})
	return filepath.Join(serviceDir, filepath.FromSlash(matches[0])), nil
}
