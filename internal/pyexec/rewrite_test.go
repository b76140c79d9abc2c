package pyexec

import (
	"strings"
	"testing"
)

func TestRewritePlotCalls(t *testing.T) {
	const plotPath = "/tmp/artifacts/figure.png"

	tests := []struct {
		name         string
		code         string
		wantShowGone bool
		wantSavefig  bool
		unchanged    bool
	}{
		{
			name:         "show replaced with savefig",
			code:         "import matplotlib.pyplot as plt\nplt.plot([1, 2])\nplt.show()",
			wantShowGone: true,
			wantSavefig:  true,
		},
		{
			name:        "savefig appended when plt used without saving",
			code:        "import matplotlib.pyplot as plt\nplt.plot([1, 2])",
			wantSavefig: true,
		},
		{
			name:      "existing savefig left alone",
			code:      "import matplotlib.pyplot as plt\nplt.plot([1, 2])\nplt.savefig('out.png')",
			unchanged: true,
		},
		{
			name:      "non-plotting code untouched",
			code:      "print('hello')",
			unchanged: true,
		},
		{
			name:         "from-import form detected",
			code:         "from matplotlib import pyplot as plt\nplt.plot([1])\nplt.show()",
			wantShowGone: true,
			wantSavefig:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RewritePlotCalls(tt.code, plotPath)

			if tt.unchanged {
				if got != tt.code {
					t.Errorf("code should be unchanged:\ngot:  %q\nwant: %q", got, tt.code)
				}
				return
			}

			if tt.wantShowGone && strings.Contains(got, "plt.show()") {
				t.Errorf("plt.show() should have been removed:\n%s", got)
			}
			if tt.wantSavefig {
				if !strings.Contains(got, "plt.savefig") {
					t.Errorf("expected a savefig call:\n%s", got)
				}
				if !strings.Contains(got, plotPath) {
					t.Errorf("savefig should target %s:\n%s", plotPath, got)
				}
				if !strings.Contains(got, "Figure saved to") {
					t.Errorf("expected a printed save notice:\n%s", got)
				}
			}
		})
	}
}

func TestRewritePlotCallsReplacesEveryShow(t *testing.T) {
	code := "import matplotlib.pyplot as plt\nplt.plot([1])\nplt.show()\nplt.plot([2])\nplt.show()"
	got := RewritePlotCalls(code, "fig.png")
	if strings.Contains(got, "plt.show()") {
		t.Errorf("all plt.show() calls should be rewritten:\n%s", got)
	}
	if strings.Count(got, "plt.savefig") != 2 {
		t.Errorf("expected 2 savefig calls, got %d:\n%s", strings.Count(got, "plt.savefig"), got)
	}
}
