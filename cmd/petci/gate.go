package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/service/coverage"
	"github.com/spf13/cobra"
)

func gateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Check the coverage report of one service against the threshold",
		Args:  cobra.NoArgs,
		RunE:  runGate,
	}
	attachGateFlags(cmd)
	return cmd
}

func runGate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("service")
	service, ok := a.ciConfig.Services.Lookup(name)
	if !ok {
		return errs.ErrUnknownService(name)
	}
	report := a.ciConfig.Report
	if path, _ := cmd.Flags().GetString("report"); path != "" {
		report.Path = path
	}

	verdict, err := coverage.New(a.cfg.RepoDir, report, a.logger).Evaluate(ctx, service, a.ciConfig.Threshold)
	if errors.Is(err, errs.ErrMissingReport) {
		a.logger.Errorf("no coverage report for service %s: %v", name, err)
		printVerdict(cmd.OutOrStdout(), core.NewMissingReportVerdict(name, a.ciConfig.Threshold, report.ExpectedPath(service)))
		return exitCode(1)
	}
	if err != nil {
		return err
	}
	printVerdict(cmd.OutOrStdout(), verdict)
	if verdict.Passed() {
		return nil
	}
	return exitCode(a.cfg.UnstableExitCode)
}

func printVerdict(w io.Writer, v *core.CoverageVerdict) {
	if v.Status == core.VerdictMissingReport {
		fmt.Fprintf(w, "%s %s (threshold %d%%)\n", v.Service, v.Status, v.Threshold)
		return
	}
	line := fmt.Sprintf("%s %s %.2f%%", v.Service, v.Status, v.Percentage)
	if v.BranchPercentage != nil {
		line += fmt.Sprintf(" branch %.2f%%", *v.BranchPercentage)
	}
	fmt.Fprintf(w, "%s (threshold %d%%)\n", line, v.Threshold)
}
