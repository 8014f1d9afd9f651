package main

import (
	"os"
	"strings"

	"progress-board/internal/cli"
	"progress-board/internal/statusutil"
)

func isStatus(s string) bool {
	_, err := statusutil.Parse(s)
	return err == nil
}

func rewriteDirectSetArgs(argv []string, commands map[string]bool) []string {
	// Convenience: `board "Sport > Football" done` works like `board set "Sport > Football" done`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `board --backend sqlite <path> <status>`), so we look
	// for the first positional token, not just argv[1].
	if len(argv) < 3 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":    true,
		"--outline":   true,
		"--content":   true,
		"--state-dir": true,
		"--backend":   true,
		"--namespace": true,
		"--format":    true,
		"--log-level": true,
		"--locale":    true,
	}

	insertAt := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "set")
		out = append(out, argv[i:]...)
		return out
	}
	direct := func(i int) bool {
		if i+1 >= len(argv) {
			return false
		}
		a := strings.TrimSpace(argv[i])
		return a != "" && !commands[a] && isStatus(argv[i+1])
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if direct(i + 1) {
				return insertAt(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if direct(i) {
			return insertAt(i)
		}
		return argv
	}
	return argv
}

func main() {
	cmd := cli.NewRootCmd()

	commands := map[string]bool{"help": true, "completion": true}
	for _, c := range cmd.Commands() {
		commands[c.Name()] = true
		for _, a := range c.Aliases {
			commands[a] = true
		}
	}
	cmd.SetArgs(rewriteDirectSetArgs(os.Args, commands)[1:])

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
