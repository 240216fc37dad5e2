// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRevision returns the HEAD commit of the repository at root, or
// "unknown" when root is not a repository or git is unavailable. The
// engine treats the revision as an opaque string either way.
func GitRevision(root string) string {
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		return "unknown"
	}
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	rev := strings.TrimSpace(string(out))
	if rev == "" {
		return "unknown"
	}
	return rev
}
