// Package command runs the per-service build commands and the internal commands petci needs
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/logstream"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
)

type manager struct {
	logger     lumber.Logger
	repoDir    string
	secretData map[string]string
}

// NewExecutionManager returns new instance of manager.
// Values of secretData are masked in the build output.
func NewExecutionManager(repoDir string, secretData map[string]string, logger lumber.Logger) core.ExecutionManager {
	return &manager{logger: logger,
		repoDir:    repoDir,
		secretData: secretData}
}

// ExecuteServiceCommand runs the build command of a service from the repository root
func (m *manager) ExecuteServiceCommand(ctx context.Context,
	service core.ServiceEntry,
	build *core.BuildConfig) (core.BuildStatus, error) {
	script := m.createScript(service, build.Command)
	envVars := m.GetEnvVariables(service, build.Env)

	logWriter := lumber.NewWriter(m.logger, service.Name)
	defer logWriter.Close()
	maskWriter := logstream.NewMasker(logWriter, m.secretData)
	defer maskWriter.Close()

	cmd := exec.CommandContext(ctx, global.BuildShell, "-c", script)
	cmd.Dir = m.repoDir
	cmd.Env = envVars
	cmd.Stdout = maskWriter
	cmd.Stderr = maskWriter

	start := time.Now()
	if startErr := cmd.Start(); startErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		m.logger.Errorf("failed to start build of service %s, error: %v", service.Name, startErr)
		return "", errs.ErrBuildCmd(service.Name, startErr.Error())
	}
	m.logger.Debugf("build of service %s started with id %d", service.Name, cmd.Process.Pid)

	if execErr := cmd.Wait(); execErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			m.logger.Errorf("build of service %s interrupted: %v", service.Name, ctxErr)
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(execErr, &exitErr) {
			m.logger.Warnf("build of service %s failed with exit code %d after %s",
				service.Name, exitErr.ExitCode(), time.Since(start).Round(time.Millisecond))
			return core.BuildFailed, nil
		}
		m.logger.Errorf("build of service %s, exited with error: %v", service.Name, execErr)
		return "", errs.ErrBuildCmd(service.Name, execErr.Error())
	}
	m.logger.Infof("build of service %s passed in %s, %d lines of output",
		service.Name, time.Since(start).Round(time.Millisecond), logWriter.Lines())
	return core.BuildPass, nil
}

// ExecuteInternalCommand executes internal commands and returns their stdout
func (m *manager) ExecuteInternalCommand(ctx context.Context,
	commandType core.CommandType,
	cwd string,
	name string,
	args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	var stdout bytes.Buffer
	logWriter := lumber.NewWriter(m.logger, string(commandType))
	defer logWriter.Close()
	cmd.Stdout = &stdout
	cmd.Stderr = logWriter
	m.logger.Debugf("Executing command of type %s", commandType)
	if err := cmd.Run(); err != nil {
		m.logger.Errorf("command of type %s failed with error: %v", commandType, err)
		return nil, err
	}
	return stdout.Bytes(), nil
}

// GetEnvVariables returns the process environment extended with the build env and the service being built
func (m *manager) GetEnvVariables(service core.ServiceEntry, envMap map[string]string) []string {
	envVars := os.Environ()
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		envVars = append(envVars, fmt.Sprintf("%s=%s", k, m.substitute(service, envMap[k])))
	}
	envVars = append(envVars,
		fmt.Sprintf("PETCI_SERVICE=%s", service.Name),
		fmt.Sprintf("PETCI_SERVICE_DIR=%s", service.Directory()))
	return envVars
}
