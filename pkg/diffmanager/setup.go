// Package diffmanager lists the files changed by a push or pull request
package diffmanager

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/lumber"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/urlmanager"
	"github.com/sourcegraph/go-diff/diff"
)

const (
	devNull       = "/dev/null"
	stdinSource   = "-"
	defaultTarget = "HEAD"
)

type diffManager struct {
	logger      lumber.Logger
	requests    core.Requests
	execManager core.ExecutionManager
	stdin       io.Reader
}

type gitLabDiffList struct {
	CommitDiff []gitLabDiff `json:"diffs"`
	PRDiff     []gitLabDiff `json:"changes"`
}
type gitLabDiff struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
}

// NewDiffManager Instantiate DiffManager
func NewDiffManager(requests core.Requests, execManager core.ExecutionManager, logger lumber.Logger) core.DiffManager {
	return &diffManager{
		logger:      logger,
		requests:    requests,
		execManager: execManager,
		stdin:       os.Stdin,
	}
}

// Updated values with "or" operation
func (dm *diffManager) updateWithOr(m map[string]int, key string, value int) {
	if key == "" {
		return
	}
	m[key] |= value
}

// GetChangedFiles returns the sorted, de-duplicated changed paths.
// Sources are tried in order: explicit list, list file, provider API, local git diff.
func (dm *diffManager) GetChangedFiles(ctx context.Context, payload *core.Payload) ([]string, error) {
	var m map[string]int
	var err error
	switch {
	case payload.ChangedFiles != nil:
		m = dm.fromList(payload.ChangedFiles)
	case payload.ChangedFilesFrom != "":
		m, err = dm.fromFile(payload.ChangedFilesFrom)
	case payload.GitProvider != "":
		m, err = dm.fromProvider(ctx, payload)
	case payload.BaseCommit != "":
		m, err = dm.fromLocalGit(ctx, payload)
	default:
		return nil, errs.ErrNoChangeSource
	}
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(m))
	for path, change := range m {
		dm.logger.Debugf("changed file %s, change type %d", path, change)
		files = append(files, path)
	}
	sort.Strings(files)
	dm.logger.Infof("found %d changed files", len(files))
	return files, nil
}

func (dm *diffManager) fromList(paths []string) map[string]int {
	m := make(map[string]int, len(paths))
	for _, path := range paths {
		dm.updateWithOr(m, strings.TrimSpace(path), core.FileModified)
	}
	return m
}

func (dm *diffManager) fromFile(source string) (map[string]int, error) {
	var r io.Reader
	if source == stdinSource {
		r = dm.stdin
	} else {
		f, err := os.Open(source)
		if err != nil {
			dm.logger.Errorf("failed to open changed files list %s, error: %v", source, err)
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		paths = append(paths, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		dm.logger.Errorf("failed to read changed files list %s, error: %v", source, err)
		return nil, err
	}
	return dm.fromList(paths), nil
}

func (dm *diffManager) fromLocalGit(ctx context.Context, payload *core.Payload) (map[string]int, error) {
	target := payload.TargetCommit
	if target == "" {
		target = defaultTarget
	}
	out, err := dm.execManager.ExecuteInternalCommand(ctx, core.GitDiff, payload.RepoDir,
		"git", "-c", "core.quotePath=false", "diff", "--name-status", "--no-renames", payload.BaseCommit, target)
	if err != nil {
		dm.logger.Errorf("failed to run git diff %s..%s, error: %v", payload.BaseCommit, target, err)
		return nil, errs.ErrGitCmd(err.Error())
	}
	return dm.parseNameStatus(string(out)), nil
}

// parseNameStatus reads `git diff --name-status` output, one "<status>\t<path>" per line.
func (dm *diffManager) parseNameStatus(out string) map[string]int {
	m := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		for i := 1; i < len(fields); i++ {
			fields[i] = unquotePath(fields[i])
		}
		switch fields[0] {
		case "A":
			dm.updateWithOr(m, fields[1], core.FileAdded)
		case "D":
			dm.updateWithOr(m, fields[1], core.FileRemoved)
		default:
			dm.updateWithOr(m, fields[len(fields)-1], core.FileModified)
		}
	}
	return m
}

// unquotePath undoes the C style quoting git applies to paths with special characters
func unquotePath(path string) string {
	if len(path) < 2 || path[0] != '"' || path[len(path)-1] != '"' {
		return path
	}
	if unquoted, err := strconv.Unquote(path); err == nil {
		return unquoted
	}
	return path
}

func (dm *diffManager) fromProvider(ctx context.Context, payload *core.Payload) (map[string]int, error) {
	path, err := urlmanager.RepoPath(payload.RepoLink)
	if err != nil {
		return nil, err
	}

	var endpoint string
	if payload.EventType == core.EventPullRequest {
		endpoint, err = urlmanager.GetPullRequestDiffURL(payload.GitProvider, path, payload.PullRequestNumber)
	} else {
		if payload.BaseCommit == "" {
			dm.logger.Debugf("basecommit is empty for gitprovider %v error %v", payload.GitProvider, errs.ErrGitDiffNotFound)
			return nil, errs.ErrGitDiffNotFound
		}
		target := payload.TargetCommit
		if target == "" {
			target = defaultTarget
		}
		endpoint, err = urlmanager.GetCommitDiffURL(payload.GitProvider, path, payload.BaseCommit, target)
	}
	if err != nil {
		dm.logger.Errorf("failed to get api url for gitprovider: %v error: %v", payload.GitProvider, err)
		return nil, err
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3.diff"}
	if payload.Oauth != nil && payload.Oauth.AccessToken != "" {
		headers["Authorization"] = fmt.Sprintf("%s %s", payload.Oauth.Type, payload.Oauth.AccessToken)
	}
	body, status, err := dm.requests.MakeAPIRequest(ctx, http.MethodGet, endpoint, nil, headers)
	if err != nil {
		dm.logger.Errorf("failed to get diff for gitprovider: %s, status: %d, error: %v", payload.GitProvider, status, err)
		return nil, err
	}
	return dm.parseGitDiff(payload.GitProvider, payload.EventType, body)
}

func (dm *diffManager) parseGitDiff(gitprovider string, eventType core.EventType, body []byte) (map[string]int, error) {
	switch gitprovider {
	case core.GitHub, core.Bitbucket:
		return dm.parseDiff(body)
	case core.GitLab:
		return dm.parseGitLabDiff(eventType, body)
	default:
		return nil, errs.ErrUnsupportedGitProvider
	}
}

// parseDiff reads a unified multi-file diff; a file that disappears is still a change.
func (dm *diffManager) parseDiff(body []byte) (map[string]int, error) {
	m := make(map[string]int)
	if len(strings.TrimSpace(string(body))) == 0 {
		return m, nil
	}
	fileDiffs, err := diff.ParseMultiFileDiff(body)
	if err != nil {
		dm.logger.Errorf("failed to parse unified diff, error: %v", err)
		return nil, err
	}
	for _, fd := range fileDiffs {
		oldName := stripPrefix(fd.OrigName, "a/")
		newName := stripPrefix(fd.NewName, "b/")
		switch {
		case fd.OrigName == devNull:
			dm.updateWithOr(m, newName, core.FileAdded)
		case fd.NewName == devNull:
			dm.updateWithOr(m, oldName, core.FileRemoved)
		case oldName != newName:
			dm.updateWithOr(m, oldName, core.FileRemoved)
			dm.updateWithOr(m, newName, core.FileAdded)
		default:
			dm.updateWithOr(m, newName, core.FileModified)
		}
	}
	return m, nil
}

func (dm *diffManager) parseGitLabDiff(eventType core.EventType, body []byte) (map[string]int, error) {
	m := make(map[string]int)
	var diffList gitLabDiffList
	if err := json.Unmarshal(body, &diffList); err != nil {
		dm.logger.Errorf("failed to unmarshall diff %v error %v", string(body), err)
		return nil, err
	}
	diffs := diffList.PRDiff
	if eventType == core.EventPush {
		diffs = diffList.CommitDiff
	}
	for _, d := range diffs {
		switch {
		case d.DeletedFile:
			dm.updateWithOr(m, d.OldPath, core.FileRemoved)
		case d.NewFile:
			dm.updateWithOr(m, d.NewPath, core.FileAdded)
		case d.RenamedFile:
			dm.updateWithOr(m, d.OldPath, core.FileRemoved)
			dm.updateWithOr(m, d.NewPath, core.FileAdded)
		default:
			dm.updateWithOr(m, d.NewPath, core.FileModified)
		}
	}
	return m, nil
}

func stripPrefix(name, prefix string) string {
	if name == devNull {
		return ""
	}
	return strings.TrimPrefix(name, prefix)
}
