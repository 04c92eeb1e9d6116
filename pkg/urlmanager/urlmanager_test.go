package urlmanager

import (
	"net/url"
	"testing"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
)

func TestRepoPath(t *testing.T) {
	tests := []struct {
		name     string
		repoLink string
		want     string
		wantErr  bool
	}{
		{"github link", "https://github.com/spring-petclinic/spring-petclinic-microservices", "/spring-petclinic/spring-petclinic-microservices", false},
		{"clone url", "https://github.com/spring-petclinic/spring-petclinic-microservices.git", "/spring-petclinic/spring-petclinic-microservices", false},
		{"trailing slash", "https://gitlab.com/tests/nexe/", "/tests/nexe", false},
		{"no path", "https://github.com", "", true},
		{"invalid url", "://bad", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepoPath(tt.repoLink)
			if (err != nil) != tt.wantErr {
				t.Errorf("RepoPath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("RepoPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCommitDiffURL(t *testing.T) {
	type args struct {
		gitprovider  string
		path         string
		baseCommit   string
		targetCommit string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{"For github as git provider", args{"github", "/tests/nexe", "abc", "xyz"}, "https://api.github.com/repos/tests/nexe/compare/abc...xyz", false},
		{"For unsupported git provider", args{"gittest", "tests/nexe", "abc", "xyz"}, "", true},
		{"For gitlab as git provider", args{"gitlab", "/tests/nexe", "abc", "xyz"}, global.APIHostURLMap["gitlab"] + "/" + url.QueryEscape("tests/nexe") + "/repository/compare?from=abc&to=xyz", false},
		{"For bitbucket as git provider", args{"bitbucket", "/tests/nexe", "abc", "xyz"}, "https://api.bitbucket.org/2.0/repositories/tests/nexe/diff/xyz..abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetCommitDiffURL(tt.args.gitprovider, tt.args.path, tt.args.baseCommit, tt.args.targetCommit)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetCommitDiffURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("GetCommitDiffURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetPullRequestDiffURL(t *testing.T) {
	type args struct {
		gitprovider string
		path        string
		prNumber    int
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{"For github as git provider", args{"github", "/tests/nexe", 2}, "https://api.github.com/repos/tests/nexe/pulls/2", false},
		{"For gitlab as git provider", args{"gitlab", "/tests/nexe", 2}, global.APIHostURLMap["gitlab"] + "/" + url.QueryEscape("tests/nexe") + "/merge_requests/2/changes", false},
		{"For bitbucket as git provider", args{"bitbucket", "/tests/nexe", 2}, "https://api.bitbucket.org/2.0/repositories/tests/nexe/pullrequests/2/diff", false},
		{"For unsupported git provider", args{"gittest", "/tests/nexe", 2}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetPullRequestDiffURL(tt.args.gitprovider, tt.args.path, tt.args.prNumber)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetPullRequestDiffURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("GetPullRequestDiffURL() = %v, want %v", got, tt.want)
			}
		})
	}
}
