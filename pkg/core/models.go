// Package core is the backbone of petci,
// it defines the pipeline lifecycle and the contracts its plugins implement.
package core

import (
	"math"
	"path"
	"strings"
	"time"

	"github.com/TranRoger/spring-petclinic-microservices/config"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
)

// CommandType defines type of command
type CommandType string

// Types of Command string
const (
	GitDiff CommandType = "gitdiff"
)

// EventType represents the webhook event
type EventType string

const (
	// EventPush represents the push event.
	EventPush EventType = "push"
	// EventPullRequest represents the pull request event.
	EventPullRequest EventType = "pull-request"
)

const (
	// FileAdded file added in commit
	FileAdded int = iota + 1
	// FileRemoved file removed in commit
	FileRemoved
	// FileModified file modified in commit
	FileModified
)

const (
	// GitHub as git provider
	GitHub string = "github"
	// GitLab as git provider
	GitLab string = "gitlab"
	// Bitbucket as git provider
	Bitbucket string = "bitbucket"
)

// TokenType is the scheme used in the Authorization header
type TokenType string

const (
	// Bearer as token type
	Bearer TokenType = "Bearer"
	// Basic as token type
	Basic TokenType = "Basic"
)

// Oauth represents the sructure of Oauth
type Oauth struct {
	AccessToken string    `json:"access_token"`
	Type        TokenType `json:"token_type,omitempty"`
}

// Payload carries everything needed to find the changes of a run.
// Sources are tried in order: explicit list, local git diff, provider API.
type Payload struct {
	ChangedFiles      []string  `json:"changed_files"`
	ChangedFilesFrom  string    `json:"changed_files_from"`
	RepoDir           string    `json:"repo_dir"`
	RepoLink          string    `json:"repo_link"`
	GitProvider       string    `json:"git_provider"`
	EventType         EventType `json:"event_type"`
	PullRequestNumber int       `json:"pull_request_number"`
	BaseCommit        string    `json:"base_commit"`
	TargetCommit      string    `json:"target_commit"`
	Oauth             *Oauth    `json:"-"`
}

// ServiceEntry maps a directory prefix onto a service name.
type ServiceEntry struct {
	Name   string `yaml:"name" json:"name" validate:"required"`
	Prefix string `yaml:"prefix" json:"prefix" validate:"required"`
	// Dir is the service directory relative to the repository root, defaults to Prefix without the trailing slash.
	Dir string `yaml:"dir" json:"dir,omitempty"`
}

// Directory returns the directory the service is built in.
func (s ServiceEntry) Directory() string {
	if s.Dir != "" {
		return s.Dir
	}
	return strings.TrimSuffix(s.Prefix, "/")
}

// ServiceDirectoryTable is the ordered prefix to service mapping, read-only after load.
type ServiceDirectoryTable []ServiceEntry

// DefaultServiceTable returns the built-in six service table.
func DefaultServiceTable() ServiceDirectoryTable {
	table := make(ServiceDirectoryTable, 0, len(global.DefaultServiceTable))
	for _, e := range global.DefaultServiceTable {
		table = append(table, ServiceEntry{Prefix: e[0], Name: e[1]})
	}
	return table
}

// Names returns the service names in table order without duplicates.
func (t ServiceDirectoryTable) Names() []string {
	seen := make(map[string]struct{}, len(t))
	names := make([]string, 0, len(t))
	for _, e := range t {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}

// Lookup finds the first entry for the service name.
func (t ServiceDirectoryTable) Lookup(name string) (ServiceEntry, bool) {
	for _, e := range t {
		if e.Name == name {
			return e, true
		}
	}
	return ServiceEntry{}, false
}

// BuildWideTriggers lists changes that force every service to be rebuilt.
type BuildWideTriggers struct {
	Manifests []string `yaml:"manifests" json:"manifests"`
	Pipelines []string `yaml:"pipelines" json:"pipelines"`
	Patterns  []string `yaml:"patterns" json:"patterns"`
}

// DefaultBuildWideTriggers returns the maven manifest and Jenkinsfile triggers.
func DefaultBuildWideTriggers() BuildWideTriggers {
	return BuildWideTriggers{
		Manifests: append([]string(nil), global.BuildManifests...),
		Pipelines: append([]string(nil), global.PipelineDefinitions...),
	}
}

// SelectionReason explains how a ServiceSelection was reached.
type SelectionReason string

// Selection reasons
const (
	ReasonNoChanges SelectionReason = "no-changes"
	ReasonBuildWide SelectionReason = "build-wide"
	ReasonMatched   SelectionReason = "matched"
	ReasonUnmatched SelectionReason = "unmatched"
)

// ServiceSelection is either a set of service names or the "all" sentinel.
type ServiceSelection struct {
	All      bool            `json:"all"`
	Services []string        `json:"services,omitempty"`
	Reason   SelectionReason `json:"reason"`
	// Trigger is the path that fired the build-wide override.
	Trigger string `json:"trigger,omitempty"`
}

// Contains reports whether the service is selected.
func (s ServiceSelection) Contains(service string) bool {
	if s.All {
		return true
	}
	for _, name := range s.Services {
		if name == service {
			return true
		}
	}
	return false
}

func (s ServiceSelection) String() string {
	if s.All {
		return global.AllServices
	}
	return strings.Join(s.Services, ",")
}

// Expand resolves the selection against the table, in table order.
func (s ServiceSelection) Expand(table ServiceDirectoryTable) []ServiceEntry {
	seen := make(map[string]struct{}, len(table))
	entries := make([]ServiceEntry, 0, len(table))
	for _, e := range table {
		if _, ok := seen[e.Name]; ok || !s.Contains(e.Name) {
			continue
		}
		seen[e.Name] = struct{}{}
		entries = append(entries, e)
	}
	return entries
}

// ReportFormat is the shape of a coverage report.
type ReportFormat string

// Report formats
const (
	ReportAuto ReportFormat = "auto"
	ReportCSV  ReportFormat = "csv"
	ReportXML  ReportFormat = "xml"
)

// CoverageSummary is the parsed content of a coverage report, either RowBased or RateBased.
type CoverageSummary interface {
	isCoverageSummary()
}

// RowBased is the sum of a JaCoCo style csv report.
type RowBased struct {
	Missed        int64 `json:"missed"`
	Covered       int64 `json:"covered"`
	BranchMissed  int64 `json:"branch_missed,omitempty"`
	BranchCovered int64 `json:"branch_covered,omitempty"`
	HasBranches   bool  `json:"has_branches"`
}

// RateBased holds the precomputed rates of a cobertura style xml report.
type RateBased struct {
	LineRate      float64 `json:"line_rate"`
	BranchRate    float64 `json:"branch_rate"`
	HasBranchRate bool    `json:"has_branch_rate"`
}

func (RowBased) isCoverageSummary()  {}
func (RateBased) isCoverageSummary() {}

// VerdictStatus is the result of the coverage gate for one service.
type VerdictStatus string

// Verdict statuses
const (
	VerdictPass           VerdictStatus = "pass"
	VerdictBelowThreshold VerdictStatus = "below-threshold"
	VerdictMissingReport  VerdictStatus = "missing-report"
)

// CoverageVerdict is the coverage gate outcome of one service.
type CoverageVerdict struct {
	Service          string        `json:"service"`
	Status           VerdictStatus `json:"status"`
	Percentage       float64       `json:"percentage"`
	BranchPercentage *float64      `json:"branch_percentage,omitempty"`
	Threshold        int           `json:"threshold"`
	ReportPath       string        `json:"report_path,omitempty"`
}

// Passed reports whether the service met the threshold.
func (v *CoverageVerdict) Passed() bool {
	return v != nil && v.Status == VerdictPass
}

// NewMissingReportVerdict returns the verdict recorded when no report was produced.
func NewMissingReportVerdict(service string, threshold int, reportPath string) *CoverageVerdict {
	return &CoverageVerdict{
		Service:    service,
		Status:     VerdictMissingReport,
		Threshold:  threshold,
		ReportPath: reportPath,
	}
}

// RoundPercent rounds half away from zero to 2 decimal places.
func RoundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildStatus is the outcome of a service build/test step.
type BuildStatus string

// Build statuses
const (
	BuildPass   BuildStatus = "pass"
	BuildFailed BuildStatus = "failed"
)

// RunStatus is the aggregated status of a pipeline run.
type RunStatus string

// Run statuses
const (
	RunSuccess  RunStatus = "success"
	RunUnstable RunStatus = "unstable"
	RunFailed   RunStatus = "failed"
)

// MissingReportPolicy decides what a missing coverage report does to the run.
type MissingReportPolicy string

// Missing report policies
const (
	MissingReportUnstable MissingReportPolicy = "unstable"
	MissingReportFail     MissingReportPolicy = "fail"
	MissingReportSkip     MissingReportPolicy = "skip"
)

// BuildConfig describes the external build/test tool invocation.
type BuildConfig struct {
	Command string            `yaml:"command" json:"command" validate:"required"`
	Env     map[string]string `yaml:"env" json:"env"`
}

// ReportConfig describes where each service writes its coverage report.
type ReportConfig struct {
	Path   string       `yaml:"path" json:"path" validate:"required"`
	Format ReportFormat `yaml:"format" json:"format" validate:"oneof=auto csv xml"`
}

// ExpectedPath is the report pattern of service relative to the repository root.
func (r ReportConfig) ExpectedPath(service ServiceEntry) string {
	return path.Join(service.Directory(), r.Path)
}

// CIConfig represents the .petci.yml file
type CIConfig struct {
	Version             int                   `yaml:"version" validate:"oneof=1"`
	Threshold           int                   `yaml:"threshold" validate:"min=0,max=100"`
	MissingReportPolicy MissingReportPolicy   `yaml:"missingReportPolicy" validate:"oneof=unstable fail skip"`
	Parallelism         int                   `yaml:"parallelism" validate:"min=1"`
	BuildWide           BuildWideTriggers     `yaml:"buildWide"`
	Build               BuildConfig           `yaml:"build"`
	Report              ReportConfig          `yaml:"report"`
	Services            ServiceDirectoryTable `yaml:"services" validate:"required,min=1,dive"`
}

// DefaultCIConfig returns the configuration used when no .petci.yml exists.
func DefaultCIConfig() *CIConfig {
	return &CIConfig{
		Version:             1,
		Threshold:           global.DefaultCoverageThreshold,
		MissingReportPolicy: MissingReportUnstable,
		Parallelism:         global.DefaultParallelism,
		BuildWide:           DefaultBuildWideTriggers(),
		Build:               BuildConfig{Command: global.DefaultBuildCommand},
		Report:              ReportConfig{Path: global.DefaultReportPath, Format: ReportAuto},
		Services:            DefaultServiceTable(),
	}
}

// ServiceResult is the outcome of one service in a run.
type ServiceResult struct {
	Service  string           `json:"service"`
	Build    BuildStatus      `json:"build"`
	Verdict  *CoverageVerdict `json:"verdict,omitempty"`
	Duration time.Duration    `json:"duration"`
}

// RunReport summarises a pipeline run.
type RunReport struct {
	RunID        string           `json:"run_id"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      time.Time        `json:"end_time"`
	ChangedFiles int              `json:"changed_files"`
	Threshold    int              `json:"threshold"`
	Selection    ServiceSelection `json:"selection"`
	Results      []ServiceResult  `json:"results"`
	Status       RunStatus        `json:"status"`
}

// Pipeline defines all attributes of Pipeline
type Pipeline struct {
	Cfg              *config.PetciConfig
	CIConfig         *CIConfig
	Payload          *Payload
	Logger           lumber.Logger
	DiffManager      DiffManager
	Selector         ServiceSelector
	ExecutionManager ExecutionManager
	CoverageService  CoverageService
	MetricsExporter  MetricsExporter
}
