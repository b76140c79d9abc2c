package sandbox

import (
	"regexp"
	"strings"
)

// installSpecToken matches one pip requirement: a package name, an optional
// extras group, and an optional version constraint. Anything else — shell
// metacharacters, pip options, URLs, paths — is rejected before the spec is
// spliced into a pip install command line.
var installSpecToken = regexp.MustCompile(
	`^[A-Za-z0-9][A-Za-z0-9._-]*` + // name
		`(\[[A-Za-z0-9,._-]+\])?` + // extras, e.g. pandas[excel]
		`((==|>=|<=|~=|!=|===|<|>)[A-Za-z0-9.*+!_-]+)?$`, // version constraint
)

// GuardInstallSpec checks a space-separated package spec before installation.
// Returns an empty string if the spec is safe, otherwise the reason it was
// blocked.
func GuardInstallSpec(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "empty package spec"
	}

	// < and > are allowed: they appear in version constraints and every
	// token is validated against installSpecToken below anyway.
	if strings.ContainsAny(spec, ";|&$`(){}\"'\\\n\r\x00") {
		return "shell metacharacters are not allowed in package specs"
	}

	for _, token := range strings.Fields(spec) {
		if strings.HasPrefix(token, "-") {
			return "pip options are not allowed: " + token
		}
		if !installSpecToken.MatchString(token) {
			return "invalid package spec: " + token
		}
	}

	return ""
}

// IsInstallSpecSafe is a convenience wrapper around GuardInstallSpec.
func IsInstallSpecSafe(spec string) bool {
	return GuardInstallSpec(spec) == ""
}
