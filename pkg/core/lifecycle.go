package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/TranRoger/spring-petclinic-microservices/config"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// NewPipeline creates and returns a new Pipeline instance
func NewPipeline(cfg *config.PetciConfig, ciConfig *CIConfig, logger lumber.Logger) *Pipeline {
	return &Pipeline{
		Cfg:      cfg,
		CIConfig: ciConfig,
		Logger:   logger,
	}
}

// Start runs the pipeline: list changes, select services, build and gate each of them.
// A returned error is an infrastructure failure, the report then holds the results gathered so far.
func (pl *Pipeline) Start(ctx context.Context) (report *RunReport, err error) {
	timeout, err := pl.Cfg.RunTimeout()
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", pl.Cfg.Timeout, err)
	}
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	report = &RunReport{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
		Threshold: pl.CIConfig.Threshold,
		Status:    RunFailed,
	}
	logger := pl.Logger.WithFields(lumber.Fields{"run": report.RunID})
	logger.Debugf("Starting pipeline.....")

	defer func() {
		if p := recover(); p != nil {
			logger.Errorf("panic stack trace: %v\n%s", p, string(debug.Stack()))
			err = fmt.Errorf("pipeline panicked: %v", p)
			report.Status = RunFailed
		}
		report.EndTime = time.Now()
		pl.publish(logger, report)
	}()

	changed, err := pl.DiffManager.GetChangedFiles(ctx, pl.Payload)
	if err != nil {
		logger.Errorf("failed to list changed files: %v", err)
		return report, fmt.Errorf("listing changed files: %w", err)
	}
	report.ChangedFiles = len(changed)

	selection := pl.Selector.SelectServices(changed)
	report.Selection = selection
	if selection.Reason == ReasonBuildWide {
		logger.Infof("build-wide change %s, selecting all services", selection.Trigger)
	} else {
		logger.Infof("selected services: %s (%s)", selection, selection.Reason)
	}

	services := selection.Expand(pl.CIConfig.Services)
	results, err := pl.runServices(ctx, services)
	report.Results = results
	report.Status = Aggregate(results, pl.CIConfig.MissingReportPolicy)
	if err != nil {
		report.Status = RunFailed
		logger.Errorf("pipeline aborted: %v", err)
		return report, err
	}
	return report, nil
}

// runServices builds and gates services in table order, up to parallelism at a time.
func (pl *Pipeline) runServices(ctx context.Context, services []ServiceEntry) ([]ServiceResult, error) {
	results := make([]ServiceResult, len(services))
	if pl.CIConfig.Parallelism <= 1 {
		for i, service := range services {
			result, err := pl.runService(ctx, service)
			results[i] = result
			if err != nil {
				return results[:i+1], err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, pl.CIConfig.Parallelism)
	for i, service := range services {
		i, service := i, service
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()
			result, err := pl.runService(gctx, service)
			results[i] = result
			return err
		})
	}
	err := g.Wait()

	ran := results[:0]
	for _, result := range results {
		if result.Service != "" {
			ran = append(ran, result)
		}
	}
	return ran, err
}

func (pl *Pipeline) runService(ctx context.Context, service ServiceEntry) (ServiceResult, error) {
	start := time.Now()
	result := ServiceResult{Service: service.Name}
	logger := pl.Logger.WithFields(lumber.Fields{"service": service.Name})

	logger.Infof("building service %s", service.Name)
	status, err := pl.ExecutionManager.ExecuteServiceCommand(ctx, service, &pl.CIConfig.Build)
	if err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("build of service %s: %w", service.Name, err)
	}
	result.Build = status
	if status != BuildPass {
		logger.Errorf("build of service %s %s, skipping coverage gate", service.Name, status)
		result.Duration = time.Since(start)
		return result, nil
	}

	threshold := pl.CIConfig.Threshold
	verdict, err := pl.CoverageService.Evaluate(ctx, service, threshold)
	switch {
	case errors.Is(err, errs.ErrMissingReport):
		verdict = NewMissingReportVerdict(service.Name, threshold, pl.CIConfig.Report.ExpectedPath(service))
		switch pl.CIConfig.MissingReportPolicy {
		case MissingReportSkip:
			logger.Infof("no coverage report for %s, ignored", service.Name)
		case MissingReportFail:
			logger.Errorf("no coverage report for %s: %v", service.Name, err)
		default:
			logger.Warnf("no coverage report for %s: %v", service.Name, err)
		}
	case err != nil:
		result.Duration = time.Since(start)
		return result, fmt.Errorf("coverage of service %s: %w", service.Name, err)
	}
	result.Verdict = verdict
	result.Duration = time.Since(start)
	return result, nil
}

// Aggregate folds the service results into the run status.
func Aggregate(results []ServiceResult, policy MissingReportPolicy) RunStatus {
	status := RunSuccess
	for _, result := range results {
		if result.Build == BuildFailed {
			return RunFailed
		}
		if result.Verdict == nil {
			continue
		}
		switch result.Verdict.Status {
		case VerdictBelowThreshold:
			status = RunUnstable
		case VerdictMissingReport:
			switch policy {
			case MissingReportFail:
				return RunFailed
			case MissingReportSkip:
			default:
				status = RunUnstable
			}
		}
	}
	return status
}

// publish writes the json report and the metrics, then logs a summary.
func (pl *Pipeline) publish(logger lumber.Logger, report *RunReport) {
	if pl.Cfg.ReportFile != "" {
		if err := writeReport(pl.Cfg.ReportFile, report); err != nil {
			logger.Errorf("failed to write report %s, error: %v", pl.Cfg.ReportFile, err)
		} else {
			logger.Debugf("report written to %s", pl.Cfg.ReportFile)
		}
	}
	if pl.MetricsExporter != nil {
		if err := pl.MetricsExporter.Export(report); err != nil {
			logger.Errorf("failed to export metrics, error: %v", err)
		}
	}

	logger.Infof("%-20s %-8s %-16s %s", "SERVICE", "BUILD", "COVERAGE", "VERDICT")
	for _, result := range report.Results {
		coverage, verdict := "-", "-"
		if result.Verdict != nil {
			verdict = string(result.Verdict.Status)
			if result.Verdict.Status != VerdictMissingReport {
				coverage = fmt.Sprintf("%.2f%%", result.Verdict.Percentage)
			}
		}
		logger.Infof("%-20s %-8s %-16s %s", result.Service, result.Build, coverage, verdict)
	}
	logger.Infof("run %s finished with status %s in %s", report.RunID, report.Status,
		report.EndTime.Sub(report.StartTime).Round(time.Millisecond))
}

func writeReport(path string, report *RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), global.DirectoryPermissions); err != nil {
		return errs.ErrDirCrt(err.Error())
	}
	if err := os.WriteFile(path, data, global.FilePermissions); err != nil {
		return errs.ErrFilCrt(err.Error())
	}
	return nil
}
