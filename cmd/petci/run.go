package main

import (
	"github.com/TranRoger/spring-petclinic-microservices/pkg/command"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/diffmanager"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/metrics"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/selector"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/service/coverage"
	"github.com/spf13/cobra"
)

func runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select, build and coverage gate the affected services",
		Args:  cobra.NoArgs,
		RunE:  runPipeline,
	}
	attachRunFlags(cmd)
	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}

	requests := newRequests(a)
	payload, err := loadPayload(ctx, cmd, a, requests)
	if err != nil {
		return err
	}

	execManager := command.NewExecutionManager(a.cfg.RepoDir, secretData(a.cfg), a.logger)
	pl := core.NewPipeline(a.cfg, a.ciConfig, a.logger)
	pl.Payload = payload
	pl.DiffManager = diffmanager.NewDiffManager(requests, execManager, a.logger)
	pl.Selector = selector.New(a.ciConfig.Services, a.ciConfig.BuildWide)
	pl.ExecutionManager = execManager
	pl.CoverageService = coverage.New(a.cfg.RepoDir, a.ciConfig.Report, a.logger)
	if a.cfg.MetricsFile != "" {
		pl.MetricsExporter = metrics.New(a.cfg.MetricsFile, a.logger)
	}

	report, err := pl.Start(ctx)
	if err != nil {
		return err
	}
	switch report.Status {
	case core.RunFailed:
		return exitCode(1)
	case core.RunUnstable:
		return exitCode(a.cfg.UnstableExitCode)
	}
	return nil
}
