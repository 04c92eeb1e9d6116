package main

import (
	"fmt"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/command"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/diffmanager"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/requestutils"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/selector"
	"github.com/spf13/cobra"
)

func selectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the services affected by the changed files",
		Args:  cobra.NoArgs,
		RunE:  runSelect,
	}
	attachChangeFlags(cmd)
	return cmd
}

func runSelect(cmd *cobra.Command, args []string) error {
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
	changed, err := diffmanager.NewDiffManager(requests, execManager, a.logger).GetChangedFiles(ctx, payload)
	if err != nil {
		return err
	}
	selection := selector.New(a.ciConfig.Services, a.ciConfig.BuildWide).SelectServices(changed)
	a.logger.Debugf("selection reason %s, trigger %q", selection.Reason, selection.Trigger)

	out := cmd.OutOrStdout()
	if selection.All {
		fmt.Fprintln(out, global.AllServices)
		return nil
	}
	for _, service := range selection.Services {
		fmt.Fprintln(out, service)
	}
	return nil
}

func newRequests(a *app) core.Requests {
	return requestutils.New(a.logger, global.DefaultHTTPTimeout, requestutils.RetryPolicy(a.cfg.RequestRetries))
}
