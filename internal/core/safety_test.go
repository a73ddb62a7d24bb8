package core

import "testing"

func testScreens() Screens {
	return NewScreens(
		[]string{"rm -rf /", "mkfs", "dd if=", "shutdown"},
		[]string{"vim", "vi", "less", "ssh", "python", "python3"},
	)
}

func TestIsDangerous(t *testing.T) {
	s := testScreens()

	tests := []struct {
		cmd  string
		want bool
	}{
		{"rm -rf /", true},
		{"sudo rm -rf / --no-preserve-root", true},
		{"mkfs.ext4 /dev/sda1", true},
		{"ls -la", false},
		{"echo dd if=not-actually-dangerous-in-a-string-match", true}, // substring match, by design
	}

	for _, tt := range tests {
		if got := s.IsDangerous(tt.cmd); got != tt.want {
			t.Errorf("IsDangerous(%q) = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestIsInteractive(t *testing.T) {
	s := testScreens()

	tests := []struct {
		cmd  string
		want bool
	}{
		{"vim file.txt", true},
		{"less file.txt", true},
		{"ls -la", false},
		{"ssh host.example.com", true},
		{"ssh -T host.example.com 'ls'", false}, // -T disables pty, non-interactive
		{"python script.py", true},
		{"python -c 'print(1)'", false}, // -c runs a snippet, non-interactive
		{"python3 -c 'print(1)'", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := s.IsInteractive(tt.cmd); got != tt.want {
			t.Errorf("IsInteractive(%q) = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestSuggestionForInteractiveCommands(t *testing.T) {
	s := testScreens()

	if got := s.Suggestion("vim file.txt"); got == "" {
		t.Errorf("expected a suggestion for vim, got empty string")
	}
	if got := s.Suggestion("ls -la"); got != "" {
		t.Errorf("expected no suggestion for a non-interactive command, got %q", got)
	}
}
