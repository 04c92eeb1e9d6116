package global

import "time"

// PetciBinaryVersion is the version of the petci binary, set at link time
var PetciBinaryVersion = "dev"

// All constant related to petci
const (
	AllServices              = "all"
	DefaultCoverageThreshold = 70
	DefaultCIConfigFile      = ".petci.yml"
	DefaultReportPath        = "target/site/jacoco/jacoco.csv"
	DefaultBuildCommand      = "./mvnw -B -pl {{dir}} -am verify"
	DefaultHTTPTimeout       = 45 * time.Second
	DefaultParallelism       = 1
	DirectoryPermissions     = 0755
	FilePermissions          = 0644
	BuildShell               = "/bin/bash"
)

// BuildManifests are the build-manifest filenames whose change forces a full build.
var BuildManifests = []string{"pom.xml"}

// PipelineDefinitions are the pipeline-definition filenames whose change forces a full build.
var PipelineDefinitions = []string{"Jenkinsfile"}

// DefaultServiceTable maps directory prefixes to service names, in build order.
var DefaultServiceTable = [][2]string{
	{"spring-petclinic-api-gateway/", "api-gateway"},
	{"spring-petclinic-config-server/", "config-server"},
	{"spring-petclinic-customers-service/", "customers-service"},
	{"spring-petclinic-discovery-server/", "discovery-server"},
	{"spring-petclinic-vets-service/", "vets-service"},
	{"spring-petclinic-visits-service/", "visits-service"},
}

// APIHostURLMap is map of git provider with there api url
var APIHostURLMap = map[string]string{
	"github":    "https://api.github.com/repos",
	"gitlab":    "https://gitlab.com/api/v4/projects",
	"bitbucket": "https://api.bitbucket.org/2.0/repositories",
}
