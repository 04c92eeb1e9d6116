package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/TranRoger/spring-petclinic-microservices/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecutionManager(t *testing.T) {
	logger, err := testutils.GetLogger()
	if err != nil {
		t.Errorf("Couldn't initialize logger, error: %v", err)
	}
	secretData := map[string]string{"git": "token"}
	want := &manager{logger: logger, repoDir: "/repo", secretData: secretData}
	if got := NewExecutionManager("/repo", secretData, logger); !reflect.DeepEqual(got, want) {
		t.Errorf("NewExecutionManager() = %v, want %v", got, want)
	}
}

func Test_manager_GetEnvVariables(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	m := &manager{logger: logger}
	service := core.ServiceEntry{Name: "visits-service", Prefix: "spring-petclinic-visits-service/"}

	got := m.GetEnvVariables(service, map[string]string{"MODULE": "{{dir}}", "MAVEN_OPTS": "-Xmx1g"})
	base := len(os.Environ())
	require.Len(t, got, base+4)
	assert.Equal(t, []string{
		"MAVEN_OPTS=-Xmx1g",
		"MODULE=spring-petclinic-visits-service",
		"PETCI_SERVICE=visits-service",
		"PETCI_SERVICE_DIR=spring-petclinic-visits-service",
	}, got[base:])
}

type recordingLogger struct {
	lumber.Logger
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) {
	if len(args) != 2 {
		return
	}
	if line, ok := args[1].(string); ok {
		r.lines = append(r.lines, line)
	}
}

func Test_manager_ExecuteServiceCommand(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	repoDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "spring-petclinic-vets-service"), 0755))
	vets := core.ServiceEntry{Name: "vets-service", Prefix: "spring-petclinic-vets-service/"}

	m := NewExecutionManager(repoDir, nil, logger)

	tests := []struct {
		name    string
		command string
		want    core.BuildStatus
		wantErr bool
	}{
		{"passing build", "test -d {{dir}} && echo building {{service}}", core.BuildPass, false},
		{"failing build", "echo broken >&2; exit 3", core.BuildFailed, false},
		{"build env is visible", `test "$PETCI_SERVICE" = vets-service && test "$FLAG" = on`, core.BuildPass, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ExecuteServiceCommand(context.TODO(), vets, &core.BuildConfig{Command: tt.command, Env: map[string]string{"FLAG": "on"}})
			if (err != nil) != tt.wantErr {
				t.Errorf("ExecuteServiceCommand() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		got, err := m.ExecuteServiceCommand(ctx, vets, &core.BuildConfig{Command: "sleep 5"})
		assert.Error(t, err)
		assert.Equal(t, core.BuildStatus(""), got)
	})

	t.Run("missing repo dir cannot start", func(t *testing.T) {
		broken := NewExecutionManager(filepath.Join(repoDir, "missing"), nil, logger)
		_, err := broken.ExecuteServiceCommand(context.TODO(), vets, &core.BuildConfig{Command: "true"})
		var codeErr errs.Err
		require.True(t, errors.As(err, &codeErr), "got %v", err)
		assert.Equal(t, "ERR::BUILD::CMD", codeErr.Code)
	})
}

func Test_manager_ExecuteServiceCommand_masksSecrets(t *testing.T) {
	logger := &recordingLogger{Logger: func() lumber.Logger { l, _ := testutils.GetLogger(); return l }()}
	m := NewExecutionManager(t.TempDir(), map[string]string{"git": "s3cr3t-token"}, logger)

	status, err := m.ExecuteServiceCommand(context.TODO(), core.ServiceEntry{Name: "api-gateway", Prefix: "spring-petclinic-api-gateway/"},
		&core.BuildConfig{Command: "echo using s3cr3t-token"})
	require.NoError(t, err)
	assert.Equal(t, core.BuildPass, status)
	assert.Contains(t, logger.lines, "using ****************")
	for _, line := range logger.lines {
		assert.NotContains(t, line, "s3cr3t-token")
	}
}

func Test_manager_ExecuteInternalCommand(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	m := NewExecutionManager(".", nil, logger)

	out, err := m.ExecuteInternalCommand(context.TODO(), core.GitDiff, t.TempDir(), "echo", "-n", "a\tb")
	require.NoError(t, err)
	assert.Equal(t, "a\tb", string(out))

	_, err = m.ExecuteInternalCommand(context.TODO(), core.GitDiff, "", "false")
	assert.Error(t, err)
}
