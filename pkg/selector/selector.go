// Package selector maps changed paths to the services that need a build
package selector

import (
	"sort"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
)

type serviceSelector struct {
	table    core.ServiceDirectoryTable
	triggers core.BuildWideTriggers
}

// New returns a ServiceSelector bound to a service table and build-wide triggers.
func New(table core.ServiceDirectoryTable, triggers core.BuildWideTriggers) core.ServiceSelector {
	return &serviceSelector{table: table, triggers: triggers}
}

func (s *serviceSelector) SelectServices(changedPaths []string) core.ServiceSelection {
	return SelectServices(changedPaths, s.table, s.triggers)
}

// SelectServices returns the services whose directory prefix matches at least one changed path.
// No changes, a build-wide change or changes outside every service directory select all services.
func SelectServices(changedPaths []string, table core.ServiceDirectoryTable, triggers core.BuildWideTriggers) core.ServiceSelection {
	if len(changedPaths) == 0 {
		return core.ServiceSelection{All: true, Reason: core.ReasonNoChanges}
	}

	// build-wide changes win over any directory match, so check them before scanning
	for _, path := range changedPaths {
		if IsBuildWide(path, triggers) {
			return core.ServiceSelection{All: true, Reason: core.ReasonBuildWide, Trigger: path}
		}
	}

	matched := make(map[string]struct{})
	for _, path := range changedPaths {
		for _, entry := range table {
			if strings.HasPrefix(path, entry.Prefix) {
				matched[entry.Name] = struct{}{}
			}
		}
	}
	if len(matched) == 0 {
		return core.ServiceSelection{All: true, Reason: core.ReasonUnmatched}
	}

	services := make([]string, 0, len(matched))
	for name := range matched {
		services = append(services, name)
	}
	sort.Strings(services)
	return core.ServiceSelection{Services: services, Reason: core.ReasonMatched}
}

// IsBuildWide reports whether a change to path affects every service.
func IsBuildWide(path string, triggers core.BuildWideTriggers) bool {
	for _, pipeline := range triggers.Pipelines {
		if pipeline != "" && strings.HasSuffix(path, pipeline) {
			return true
		}
	}
	for _, manifest := range triggers.Manifests {
		if manifest != "" && strings.Contains(path, manifest) {
			return true
		}
	}
	for _, pattern := range triggers.Patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Validate returns the first build-wide pattern that is not a valid glob.
func Validate(triggers core.BuildWideTriggers) (string, bool) {
	for _, pattern := range triggers.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return pattern, false
		}
	}
	return "", true
}
