// Package metrics publishes the result of a run as a prometheus textfile
package metrics

import (
	"path/filepath"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values of petci_coverage_percent
const (
	KindLine   = "line"
	KindBranch = "branch"
)

type exporter struct {
	logger   lumber.Logger
	path     string
	registry *prometheus.Registry

	coverage      *prometheus.GaugeVec
	threshold     prometheus.Gauge
	serviceStatus *prometheus.GaugeVec
	runStatus     *prometheus.GaugeVec
	changedFiles  prometheus.Gauge
	runDuration   prometheus.Gauge
}

// New returns a MetricsExporter writing to the textfile at path, an empty path disables the file.
func New(path string, logger lumber.Logger) core.MetricsExporter {
	return newExporter(path, logger)
}

func newExporter(path string, logger lumber.Logger) *exporter {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &exporter{
		logger:   logger,
		path:     path,
		registry: registry,
		coverage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "petci_coverage_percent",
			Help: "Coverage percentage of a service",
		}, []string{"service", "kind"}),
		threshold: factory.NewGauge(prometheus.GaugeOpts{
			Name: "petci_coverage_threshold_percent",
			Help: "Coverage threshold of the run",
		}),
		serviceStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "petci_service_status",
			Help: "Outcome of a service, 1 for the status it ended in",
		}, []string{"service", "status"}),
		runStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "petci_run_status",
			Help: "Overall status of the run, 1 for the status it ended in",
		}, []string{"status"}),
		changedFiles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "petci_changed_files",
			Help: "Number of changed files considered by the run",
		}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "petci_run_duration_seconds",
			Help: "Wall time of the run",
		}),
	}
}

// Export records the report and writes the textfile.
func (e *exporter) Export(report *core.RunReport) error {
	e.record(report)
	if e.path == "" {
		return nil
	}
	if err := utils.CreateDirectory(filepath.Dir(e.path)); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(e.path, e.registry); err != nil {
		e.logger.Errorf("failed to write metrics to %s, error: %v", e.path, err)
		return err
	}
	e.logger.Debugf("metrics written to %s", e.path)
	return nil
}

func (e *exporter) record(report *core.RunReport) {
	e.threshold.Set(float64(report.Threshold))
	e.changedFiles.Set(float64(report.ChangedFiles))
	if !report.EndTime.IsZero() {
		e.runDuration.Set(report.EndTime.Sub(report.StartTime).Seconds())
	}
	e.runStatus.Reset()
	e.runStatus.WithLabelValues(string(report.Status)).Set(1)

	e.serviceStatus.Reset()
	e.coverage.Reset()
	for _, result := range report.Results {
		e.serviceStatus.WithLabelValues(result.Service, ServiceStatus(result)).Set(1)
		if result.Verdict == nil || result.Verdict.Status == core.VerdictMissingReport {
			continue
		}
		e.coverage.WithLabelValues(result.Service, KindLine).Set(result.Verdict.Percentage)
		if result.Verdict.BranchPercentage != nil {
			e.coverage.WithLabelValues(result.Service, KindBranch).Set(*result.Verdict.BranchPercentage)
		}
	}
}

// ServiceStatus folds build status and verdict into a single label value.
func ServiceStatus(result core.ServiceResult) string {
	switch {
	case result.Build == core.BuildFailed:
		return "build-failed"
	case result.Verdict == nil:
		return string(core.BuildPass)
	default:
		return string(result.Verdict.Status)
	}
}
