package testutils

// Various constant defined for to obtain dummy data for tests
const (
	ApplicationConfigPath = "/testutils/testdata/sample_config.json"    // AplicationConfigPath points to dummy config file in json format for PetciConfig
	PayloadPath           = "/testutils/testdata/payload.json"          // PayloadPath points to json file containing dummy Payload
	GithubPRDiff          = "/testutils/testdata/githubPRDiff.diff"     // GithubPRDiff points to a unified diff as served by the github api
	GitlabCommitDiff      = "/testutils/testdata/gitlabCommitDiff.json" // GitLabCommitDiff points to json file containing dummy GitLabCommitDiff
	GitlabPRDiff          = "/testutils/testdata/gitlabPRDiff.json"     // GitlabPRDiff points to json file containing dummy merge request changes
)
