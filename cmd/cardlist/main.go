package main

import (
	"os"
	"strconv"
	"strings"

	"cardlist/internal/cli"
)

func isItemIndex(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 0
}

// rewriteDirectIndexArgs turns `cardlist <index>` into `cardlist show <index>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (e.g. `cardlist --dir ... 3`), so this looks for the first
// positional token rather than argv[1].
func rewriteDirectIndexArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":    true,
		"--dir":       true,
		"--backend":   true,
		"--codec":     true,
		"--log-level": true,
		"--log-file":  true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty":   true,
		"--compress": true,
	}

	insertShow := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "show")
		out = append(out, argv[at:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isItemIndex(argv[i+1]) {
				return insertShow(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			switch {
			case strings.Contains(a, "="):
			case boolFlags[a]:
			case valueFlags[a]:
				i++ // skip value if present
			}
			continue
		}

		if isItemIndex(a) {
			return insertShow(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectIndexArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
