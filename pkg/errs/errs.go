// Package errs defines the error values shared across petci
package errs

import (
	"fmt"
	"strings"
)

// Err represents structure of a custom error
type Err struct {
	Code    string
	Message string
}

func (e Err) Error() string {
	return fmt.Sprintf("%s : %s ", e.Code, e.Message)
}

// Error represents a json-encoded API error.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}

// ErrInvalidConf is returned when the ci configuration file fails validation.
type ErrInvalidConf struct {
	Message string
	Fields  []string
	Values  []interface{}
}

func (e *ErrInvalidConf) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for i, field := range e.Fields {
		fmt.Fprintf(&b, "%s: %v\n", field, e.Values[i])
	}
	return b.String()
}

// ErrUnsupportedReportFormat is returned for a report format petci cannot parse.
func ErrUnsupportedReportFormat(format string) error {
	return New(fmt.Sprintf("unsupported coverage report format %q", format))
}

// ErrUnknownService is returned when a service is not part of the service table.
func ErrUnknownService(service string) error {
	return New(fmt.Sprintf("service %s is not defined in the service table", service))
}

var (
	// ErrMissingReport is returned when the coverage report of a service does not exist after its test step.
	ErrMissingReport = New("coverage report not found")
	// ErrMalformedReport is returned when a coverage report cannot be parsed.
	ErrMalformedReport = New("malformed coverage report")
	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
	// ErrUnsupportedGitProvider is returned when try to integrate unsupported provider repo
	ErrUnsupportedGitProvider = New("unsupported gitprovider")
	// ErrGitDiffNotFound is returned when basecommit is null or git provider returns empty diff
	ErrGitDiffNotFound = New("diff not found")
	// ErrAPIStatus is returned when the api status is not 200.
	ErrAPIStatus = New("non OK status")
	// ErrNoChangeSource is returned when no changed-file source was configured.
	ErrNoChangeSource = New("no source for changed files configured")
)

// ErrBuildCmd returns err with code "ERR::BUILD::CMD"
func ErrBuildCmd(service, err string) Err {
	return Err{
		Code:    "ERR::BUILD::CMD",
		Message: fmt.Sprintf("Unable to run build command for service %s :  %s", service, err)}
}

// ErrGitCmd returns err with code "ERR::GIT::CMD"
func ErrGitCmd(err string) Err {
	return Err{
		Code:    "ERR::GIT::CMD",
		Message: fmt.Sprintf("git diff failed :  \n%s", err)}
}

// ErrFilCrt function returns error with code ERR::FIL::CRT
func ErrFilCrt(err string) Err {
	return Err{
		Code:    "ERR::FIL::CRT",
		Message: fmt.Sprintf("Unable to create file :  \n%s", err)}
}

// ErrDirCrt returns err with code "ERR::DIR::CRT"
func ErrDirCrt(err string) Err {
	return Err{
		Code:    "ERR::DIR::CRT",
		Message: fmt.Sprintf("Unable to create directory :  \n%s", err)}
}

// ErrCIConfigNotFound is returned when the ci configuration file does not exist in the repository.
func ErrCIConfigNotFound(path string) error {
	return New(fmt.Sprintf("`%s` configuration file not found at the root of your project. Please make sure you have placed it correctly.", path))
}

// ErrInvalidPayload is returned when the change source description is incomplete.
func ErrInvalidPayload(errMsg string) error {
	return New(errMsg)
}
