// Package pyexec runs Python code against a persistent local interpreter state.
package pyexec

import (
	"fmt"
	"strings"
)

// usesMatplotlib reports whether the code pulls in matplotlib in any of the
// forms the agent tends to produce.
func usesMatplotlib(code string) bool {
	return strings.Contains(code, "import matplotlib") ||
		strings.Contains(code, "from matplotlib") ||
		strings.Contains(code, "import plt")
}

// RewritePlotCalls makes plotting code non-interactive. plt.show() blocks on a
// display that doesn't exist here, so it is replaced with a savefig call plus a
// printed notice. Code that draws with plt but never saves gets a savefig
// appended so the figure isn't silently lost.
func RewritePlotCalls(code, plotPath string) string {
	if !usesMatplotlib(code) {
		return code
	}

	save := fmt.Sprintf("plt.savefig(%q)\nprint('Figure saved to %s')", plotPath, plotPath)

	if strings.Contains(code, "plt.show()") {
		return strings.ReplaceAll(code, "plt.show()", save)
	}

	if strings.Contains(code, "plt") && !strings.Contains(code, "savefig") {
		return code + "\n" + save
	}

	return code
}
