package main

import (
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/spf13/cobra"
)

//AttachCLIFlags attaches command line flags to command
func AttachCLIFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().StringP("config", "c", "", "the config file to use")
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Run in verbose mode")
	rootCmd.PersistentFlags().StringP("env", "e", "prod", "Environment.")
	rootCmd.PersistentFlags().String("ci-config", global.DefaultCIConfigFile, "The service table and gate configuration, relative to the repository")
	rootCmd.PersistentFlags().String("repo-dir", ".", "The repository checkout directory")
	rootCmd.PersistentFlags().String("log-file", "", "Directory to write the log file into")
	return nil
}

// attachChangeFlags attaches the flags describing where the changed files come from
func attachChangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("changed-files", nil, "Explicit list of changed paths")
	cmd.Flags().String("changed-files-from", "", "File with one changed path per line, - reads stdin")
	cmd.Flags().String("base", "", "The base commit to diff against")
	cmd.Flags().String("target", "", "The target commit, defaults to HEAD")
	cmd.Flags().String("provider", "", "Git provider to query for the diff (github, gitlab, bitbucket)")
	cmd.Flags().String("repo", "", "Repository link used with --provider")
	cmd.Flags().Int("pr", 0, "Pull request number used with --provider")
	cmd.Flags().String("payload", "", "JSON payload file or http(s) address describing the change source")
}

func attachGateFlags(cmd *cobra.Command) {
	cmd.Flags().String("service", "", "The service to gate")
	cmd.Flags().String("report", "", "Report path pattern inside the service directory")
	cmd.Flags().Int("threshold", global.DefaultCoverageThreshold, "Minimum line coverage percentage")
	cmd.Flags().Int("unstable-exit-code", 0, "Exit code used when coverage is below threshold")
	_ = cmd.MarkFlagRequired("service")
}

func attachRunFlags(cmd *cobra.Command) {
	attachChangeFlags(cmd)
	cmd.Flags().Int("threshold", global.DefaultCoverageThreshold, "Minimum line coverage percentage")
	cmd.Flags().String("report-file", "", "Write the JSON run report to this path")
	cmd.Flags().String("metrics-file", "", "Write prometheus metrics in text format to this path")
	cmd.Flags().String("timeout", "", "Overall run timeout, e.g. 45m")
	cmd.Flags().Int("unstable-exit-code", 0, "Exit code used when the run is unstable")
	cmd.Flags().Int("request-retries", 0, "Retries for git provider API requests")
}
