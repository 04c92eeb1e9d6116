package config

import (
	"time"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
)

// Model definition for configuration

// PetciConfig is the application's configuration
type PetciConfig struct {
	Config           string
	CIConfig         string `json:"ciConfig"`
	LogFile          string
	LogConfig        lumber.LoggingConfig
	Env              string
	Verbose          bool
	RepoDir          string `json:"repoDir"`
	Threshold        int    `json:"threshold"`
	ThresholdSet     bool   `viper:"-" json:"-"`
	ReportFile       string `json:"reportFile"`
	MetricsFile      string `json:"metricsFile"`
	Timeout          string `json:"timeout"`
	UnstableExitCode int    `json:"unstableExitCode"`
	RequestRetries   int    `json:"requestRetries"`
	GitProvider      string `json:"provider"`
	RepoLink         string `json:"repo"`
	PullRequest      int    `json:"pr"`
	BaseCommit       string `json:"baseCommit"`
	TargetCommit     string `json:"targetCommit"`
	Git              GitConfig
}

// GitConfig contains git token
type GitConfig struct {
	Token     string
	TokenType string
}

// RunTimeout returns the overall run timeout, zero means no timeout.
func (c *PetciConfig) RunTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Timeout)
}
