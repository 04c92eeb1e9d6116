package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	e := New("A secret message")
	got := e.Error()
	want := "A secret message"
	if got != want {
		t.Errorf("Received: %v, Expected: %v", got, want)
	}
}

func TestErr_Error(t *testing.T) {
	e := ErrBuildCmd("vets-service", "exit status 1")
	got := e.Error()
	want := "ERR::BUILD::CMD : Unable to run build command for service vets-service :  exit status 1 "
	if got != want {
		t.Errorf("Received: %v, Expected: %v", got, want)
	}
}

func TestSentinelWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service vets-service: %w", ErrMissingReport)
	if !errors.Is(wrapped, ErrMissingReport) {
		t.Errorf("Expected wrapped error to match ErrMissingReport")
	}
	if errors.Is(wrapped, ErrMalformedReport) {
		t.Errorf("Did not expect wrapped error to match ErrMalformedReport")
	}
}

func TestErrInvalidConf_Error(t *testing.T) {
	e := &ErrInvalidConf{
		Message: "Invalid values provided for the following fields in the `.petci.yml` configuration file: \n",
		Fields:  []string{"threshold"},
		Values:  []interface{}{120},
	}
	want := "Invalid values provided for the following fields in the `.petci.yml` configuration file: \nthreshold: 120\n"
	if got := e.Error(); got != want {
		t.Errorf("Received: %q, Expected: %q", got, want)
	}
}
