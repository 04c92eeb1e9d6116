// Package ciconfigmanager is used for fetching and validating the .petci.yml file
package ciconfigmanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/selector"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/utils"
	"github.com/bmatcuk/doublestar/v4"
)

// ciConfigManager represents an instance of CIConfigManager instance
type ciConfigManager struct {
	logger lumber.Logger
}

// NewCIConfigManager creates and returns a new CIConfigManager instance
func NewCIConfigManager(logger lumber.Logger) core.CIConfigManager {
	return &ciConfigManager{logger: logger}
}

func (cm *ciConfigManager) LoadAndValidate(ctx context.Context,
	repoDir, path string,
	required bool) (*core.CIConfig, error) {
	resolved, err := utils.GetConfigFileName(repoDir, path)
	if err != nil {
		if required {
			return nil, err
		}
		cm.logger.Infof("no `%s` configuration file found, using the built-in service table", path)
		return core.DefaultCIConfig(), nil
	}

	yamlFile, err := os.ReadFile(filepath.Join(repoDir, resolved))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.ErrCIConfigNotFound(resolved)
		}
		cm.logger.Errorf("Error while reading file, error %v", err)
		return nil, errs.New(fmt.Sprintf("Error while reading configuration file at path: %s", resolved))
	}
	ciConfig, err := utils.ValidateStructCIYml(ctx, yamlFile, resolved)
	if err != nil {
		cm.logger.Errorf("configuration file %s is invalid, error: %v", resolved, err)
		return nil, err
	}
	if err := validateSemantics(ciConfig, resolved); err != nil {
		cm.logger.Errorf("configuration file %s is invalid, error: %v", resolved, err)
		return nil, err
	}
	cm.logger.Debugf("loaded %s with %d services, threshold %d%%", resolved, len(ciConfig.Services), ciConfig.Threshold)
	return ciConfig, nil
}

// validateSemantics checks what struct tags cannot express.
func validateSemantics(ciConfig *core.CIConfig, filename string) error {
	if pattern, ok := selector.Validate(ciConfig.BuildWide); !ok {
		return errs.New(fmt.Sprintf("invalid buildWide pattern `%s` in `%s` configuration file", pattern, filename))
	}
	if !doublestar.ValidatePattern(ciConfig.Report.Path) {
		return errs.New(fmt.Sprintf("invalid report path `%s` in `%s` configuration file", ciConfig.Report.Path, filename))
	}
	prefixes := make(map[string]string, len(ciConfig.Services))
	for _, service := range ciConfig.Services {
		if owner, ok := prefixes[service.Prefix]; ok {
			return errs.New(fmt.Sprintf("prefix `%s` is mapped to both %s and %s in `%s` configuration file",
				service.Prefix, owner, service.Name, filename))
		}
		prefixes[service.Prefix] = service.Name
	}
	return nil
}
