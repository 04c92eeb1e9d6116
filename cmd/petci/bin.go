package main

// this is cmd/root_cmd.go

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/TranRoger/spring-petclinic-microservices/config"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/ciconfigmanager"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/payloadmanager"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use:           "petci",
		Long:          `petci maps changed files to petclinic services, builds them and gates their coverage`,
		Version:       global.PetciBinaryVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// define flags used for this command
	if err := AttachCLIFlags(&rootCmd); err != nil {
		fmt.Println("Error in attaching cli flags")
	}

	rootCmd.AddCommand(selectCommand(), gateCommand(), runCommand())
	return &rootCmd
}

// app holds what every subcommand needs after setup
type app struct {
	cfg      *config.PetciConfig
	logger   lumber.Logger
	ciConfig *core.CIConfig
}

// setup loads the configuration, the logger and the .petci.yml of the repository
func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	// Load environment variables from .env if available
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: No .env file found\n")
	}

	cfg, err := config.LoadPetciConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.EnableFile = true
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "petci.log")
	}

	// LogConfig.Instance switches to the logrus implementation
	instance, err := lumber.InstanceFromName(cfg.LogConfig.Instance)
	if err != nil {
		return nil, err
	}
	logger, err := lumber.NewLogger(cfg.LogConfig, cfg.Verbose, instance)
	if err != nil {
		return nil, fmt.Errorf("could not instantiate logger %w", err)
	}

	ciConfig, err := ciconfigmanager.NewCIConfigManager(logger).
		LoadAndValidate(ctx, cfg.RepoDir, cfg.CIConfig, cmd.Flags().Changed("ci-config"))
	if err != nil {
		return nil, err
	}
	if cfg.ThresholdSet {
		if cfg.Threshold < 0 || cfg.Threshold > 100 {
			return nil, fmt.Errorf("threshold %d is out of range [0, 100]", cfg.Threshold)
		}
		ciConfig.Threshold = cfg.Threshold
	}
	return &app{cfg: cfg, logger: logger, ciConfig: ciConfig}, nil
}

// loadPayload reads the --payload source when given, otherwise builds the payload from flags.
// The result is validated before use.
func loadPayload(ctx context.Context, cmd *cobra.Command, a *app, requests core.Requests) (*core.Payload, error) {
	pm := payloadmanager.NewPayloadManger(a.logger, requests)
	payload := newPayload(cmd, a.cfg)
	if address, _ := cmd.Flags().GetString("payload"); address != "" {
		fetched, err := pm.FetchPayload(ctx, address)
		if err != nil {
			return nil, err
		}
		if fetched.RepoDir == "" {
			fetched.RepoDir = payload.RepoDir
		}
		fetched.Oauth = payload.Oauth
		payload = fetched
	}
	if err := pm.ValidatePayload(ctx, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// newPayload builds the change source description from the flags of cmd
func newPayload(cmd *cobra.Command, cfg *config.PetciConfig) *core.Payload {
	payload := &core.Payload{
		RepoDir:           cfg.RepoDir,
		RepoLink:          cfg.RepoLink,
		GitProvider:       cfg.GitProvider,
		EventType:         core.EventPush,
		PullRequestNumber: cfg.PullRequest,
		BaseCommit:        cfg.BaseCommit,
		TargetCommit:      cfg.TargetCommit,
	}
	// an explicitly empty list is a valid source, absence is not
	if cmd.Flags().Changed("changed-files") {
		files, _ := cmd.Flags().GetStringSlice("changed-files")
		payload.ChangedFiles = append([]string{}, files...)
	}
	payload.ChangedFilesFrom, _ = cmd.Flags().GetString("changed-files-from")
	if payload.PullRequestNumber > 0 {
		payload.EventType = core.EventPullRequest
	}
	if cfg.Git.Token != "" {
		payload.Oauth = &core.Oauth{
			AccessToken: cfg.Git.Token,
			Type:        core.TokenType(cfg.Git.TokenType),
		}
	}
	return payload
}

// secretData lists the values masked in build output
func secretData(cfg *config.PetciConfig) map[string]string {
	secrets := map[string]string{}
	if cfg.Git.Token != "" {
		secrets["GIT_TOKEN"] = cfg.Git.Token
	}
	return secrets
}
