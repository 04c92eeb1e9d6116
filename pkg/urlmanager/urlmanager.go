// Package urlmanager builds the git provider API urls used to fetch diffs
package urlmanager

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
)

// RepoPath returns the "/owner/repo" path of a repository link.
func RepoPath(repoLink string) (string, error) {
	u, err := url.Parse(repoLink)
	if err != nil {
		return "", err
	}
	path := strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), ".git")
	if path == "" || path == "/" {
		return "", fmt.Errorf("repository link %q has no owner/repo path", repoLink)
	}
	return path, nil
}

// GetCommitDiffURL returns commit diff url for given git provider
func GetCommitDiffURL(gitprovider, path, baseCommit, targetCommit string) (string, error) {
	switch gitprovider {
	case core.GitHub:
		return fmt.Sprintf("%s%s/compare/%s...%s", global.APIHostURLMap[gitprovider], path, baseCommit, targetCommit), nil

	case core.GitLab:
		encodedPath := url.QueryEscape(path[1:])
		return fmt.Sprintf("%s/%s/repository/compare?from=%s&to=%s", global.APIHostURLMap[gitprovider], encodedPath, baseCommit, targetCommit), nil

	case core.Bitbucket:
		return fmt.Sprintf("%s%s/diff/%s..%s", global.APIHostURLMap[gitprovider], path, targetCommit, baseCommit), nil

	default:
		return "", errs.ErrUnsupportedGitProvider
	}
}

// GetPullRequestDiffURL returns PR Diff url for given git provider
func GetPullRequestDiffURL(gitprovider, path string, prNumber int) (string, error) {
	switch gitprovider {
	case core.GitHub:
		return fmt.Sprintf("%s%s/pulls/%d", global.APIHostURLMap[gitprovider], path, prNumber), nil

	case core.GitLab:
		encodedPath := url.QueryEscape(path[1:])
		return fmt.Sprintf("%s/%s/merge_requests/%d/changes", global.APIHostURLMap[gitprovider], encodedPath, prNumber), nil

	case core.Bitbucket:
		return fmt.Sprintf("%s%s/pullrequests/%d/diff", global.APIHostURLMap[gitprovider], path, prNumber), nil

	default:
		return "", errs.ErrUnsupportedGitProvider
	}
}
