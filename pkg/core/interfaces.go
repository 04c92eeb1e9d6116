package core

import (
	"context"
)

// PayloadManager defines operations for payload
type PayloadManager interface {
	// ValidatePayload checks the payload names one usable change source
	ValidatePayload(ctx context.Context, payload *Payload) error
	// FetchPayload loads a payload from a local file or an http(s) address
	FetchPayload(ctx context.Context, payloadAddress string) (*Payload, error)
}

// DiffManager lists the files changed for the given payload
type DiffManager interface {
	// GetChangedFiles returns the changed paths relative to the repository root.
	GetChangedFiles(ctx context.Context, payload *Payload) ([]string, error)
}

// ServiceSelector maps changed paths to the affected services
type ServiceSelector interface {
	SelectServices(changedPaths []string) ServiceSelection
}

// ExecutionManager has responsibility for executing the service builds and internal commands
type ExecutionManager interface {
	// ExecuteServiceCommand runs the build/test command of a service.
	// A non zero exit is reported as BuildFailed, an error means the command could not be run at all.
	ExecuteServiceCommand(ctx context.Context, service ServiceEntry, build *BuildConfig) (BuildStatus, error)
	// ExecuteInternalCommand runs a command and returns its stdout.
	ExecuteInternalCommand(ctx context.Context, commandType CommandType, cwd string, name string, args ...string) ([]byte, error)
}

// CoverageService services coverage gate of a service
type CoverageService interface {
	// Evaluate reads the coverage report of the service and compares it against threshold.
	// It returns an error wrapping errs.ErrMissingReport when the report does not exist.
	Evaluate(ctx context.Context, service ServiceEntry, threshold int) (*CoverageVerdict, error)
}

// MetricsExporter publishes run results as metrics
type MetricsExporter interface {
	Export(report *RunReport) error
}

// Requests is a wrapper around http calls to git providers
type Requests interface {
	MakeAPIRequest(ctx context.Context, httpMethod, endpoint string, body []byte, headers map[string]string) ([]byte, int, error)
}

// CIConfigManager loads and validates the .petci.yml file
type CIConfigManager interface {
	// LoadAndValidate reads path relative to repoDir.
	// A missing file yields the defaults unless required is set.
	LoadAndValidate(ctx context.Context, repoDir, path string, required bool) (*CIConfig, error)
}
