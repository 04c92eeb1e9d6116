package testutils

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/TranRoger/spring-petclinic-microservices/config"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
)

// getCurrentWorkingDir give the file path of this file
func getCurrentWorkingDir() (string, error) {
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		return "", errs.New("runtime.Calller(1) was unable to recover information")
	}
	filepath := path.Join(path.Dir(filename), "../")
	return filepath, nil
}

// GetConfig returns a dummy PetciConfig using the json file pointed by ApplicationConfigPath
func GetConfig() (*config.PetciConfig, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	configJSON, err := os.ReadFile(cwd + ApplicationConfigPath)
	if err != nil {
		return nil, err
	}
	var petciConfig *config.PetciConfig
	err = json.Unmarshal(configJSON, &petciConfig)
	if err != nil {
		return nil, err
	}
	return petciConfig, nil
}

// GetLogger returns a dummy lumber.Logger.
func GetLogger() (lumber.Logger, error) {
	logger, err := lumber.NewLogger(lumber.LoggingConfig{ConsoleLevel: lumber.Debug}, true, 1)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// GetPayload returns a dummy core.Payload using the json file pointed by PayloadPath.
func GetPayload() (*core.Payload, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	payloadJSON, err := os.ReadFile(cwd + PayloadPath)
	if err != nil {
		return nil, err
	}
	var p *core.Payload
	err = json.Unmarshal(payloadJSON, &p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetGitDiff returns the changed files of the diff pointed by GithubPRDiff.
func GetGitDiff() []string {
	return []string{
		"Jenkinsfile",
		"docs/old-notes.md",
		"spring-petclinic-vets-service/src/main/java/org/springframework/samples/petclinic/vets/web/VetResource.java",
		"spring-petclinic-visits-service/src/main/java/org/springframework/samples/petclinic/visits/model/Visit.java",
		"spring-petclinic-visits-service/src/main/resources/application.yml",
	}
}

// LoadFile reads a file relative to the repository root.
func LoadFile(relativePath string) ([]byte, error) {
	cwd, err := getCurrentWorkingDir()
	if err != nil {
		return nil, err
	}
	absPath := fmt.Sprintf("%s/%s", cwd, relativePath)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	return data, err
}
