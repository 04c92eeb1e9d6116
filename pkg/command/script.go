package command

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
)

var placeholderRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z_]+)\s*\}\}`)

// substitute replaces the {{service}} and {{dir}} placeholders; unknown placeholders are kept.
func (m *manager) substitute(service core.ServiceEntry, command string) string {
	values := map[string]string{
		"service": service.Name,
		"dir":     service.Directory(),
	}
	return placeholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		if value, ok := values[name]; ok {
			return value
		}
		m.logger.Warnf("unknown placeholder %s in build command", match)
		return match
	})
}

// createScript converts the build command template of a service to a shell script.
func (m *manager) createScript(service core.ServiceEntry, command string) string {
	command = m.substitute(service, command)
	escaped := fmt.Sprintf("%q", command)
	escaped = strings.Replace(escaped, "$", `\$`, -1)

	buf := new(bytes.Buffer)
	fmt.Fprintln(buf)
	fmt.Fprint(buf, optionScript)
	fmt.Fprintln(buf)
	buf.WriteString(fmt.Sprintf(
		traceScript,
		escaped,
		command,
	))
	return buf.String()
}

// optionScript is a helper script this is added to the build
// to set shell options, in this case, to exit on error.
const optionScript = `
set -e
`

// traceScript is a helper script that is added to
// the build script to trace a command.
const traceScript = `
echo + %s
%s
`
