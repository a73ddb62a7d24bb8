package core

import "strings"

// Screens holds the two independent safety predicates over a shell command
// string (spec.md §4.3): a destructive-pattern detector (warn, never block)
// and an interactive-TTY detector (block before dispatch).
type Screens struct {
	DangerousPatterns   []string
	InteractivePatterns []string
}

// NewScreens builds a Screens from the configured pattern lists.
func NewScreens(dangerous, interactive []string) Screens {
	return Screens{DangerousPatterns: dangerous, InteractivePatterns: interactive}
}

// IsDangerous reports whether cmd contains any configured destructive
// pattern. Execution is never blocked on this alone — the review UI must
// display a prominent warning instead.
func (s Screens) IsDangerous(cmd string) bool {
	for _, p := range s.DangerousPatterns {
		if strings.Contains(cmd, p) {
			return true
		}
	}
	return false
}

// IsInteractive reports whether cmd invokes a program that requires a
// controlling TTY. Execution of such commands is refused before dispatch.
func (s Screens) IsInteractive(cmd string) bool {
	fields := strings.Fields(strings.TrimSpace(cmd))
	if len(fields) == 0 {
		return false
	}
	head := fields[0]

	for _, p := range s.InteractivePatterns {
		if head != p {
			continue
		}
		switch p {
		case "ssh":
			// "ssh -T ..." disables pty allocation and is non-interactive.
			if containsFlag(fields[1:], "-T") {
				continue
			}
			return true
		case "python", "python3":
			// "python -c '...'" runs a snippet non-interactively.
			if containsFlag(fields[1:], "-c") {
				continue
			}
			return true
		default:
			return true
		}
	}
	return false
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// Suggestion returns a human-readable non-interactive alternative for an
// interactive command, or "" if none is known.
func (s Screens) Suggestion(cmd string) string {
	fields := strings.Fields(strings.TrimSpace(cmd))
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "vim", "vi", "nano", "emacs":
		return "use read_file/write_file to inspect or edit the file instead of an interactive editor"
	case "top", "htop":
		return "use \"ps aux\" for a single non-interactive snapshot"
	case "less", "more":
		return "use \"cat\" or read_file to print the whole file non-interactively"
	case "man":
		return "use \"<cmd> --help\" for non-interactive usage text"
	case "ssh":
		return "add \"-T\" to disable pty allocation"
	case "python", "python3":
		return "use run_python, or pass the snippet via \"-c\""
	case "mysql", "psql", "sqlite3":
		return "pipe the query into the client (e.g. \"echo 'SELECT 1;' | psql\")"
	case "tmux", "screen":
		return "run the underlying command directly; a terminal multiplexer has nothing to multiplex here"
	default:
		return ""
	}
}
