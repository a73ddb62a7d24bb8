package config

// DefaultProvider is used when ~/.sabi/config.toml does not name one.
const DefaultProvider = "gemini"

// DefaultSystemPromptText is the static prefix of the system message;
// internal/core.App appends live system-context facts and the MCP tool
// catalog to this (spec.md §3).
const DefaultSystemPromptText = `You are sabi, a terminal AI agent. You help the user by reasoning about their
request and, when useful, proposing exactly one tool call per turn as a single
JSON object: {"tool": "<name>", ...}. Available tools: run_cmd, run_python,
read_file, write_file, search, mcp. If no tool is needed, reply in plain text.`

func defaultProviderConfigs() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		"gemini":    {Model: "gemini-2.0-flash"},
		"openai":    {BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini"},
		"anthropic": {Model: "claude-3-5-sonnet-latest"},
		"ollama":    {BaseURL: "http://localhost:11434", Model: "llama3.1:latest"},
	}
}

// DefaultDangerousPatterns are substrings that flag a run_cmd as destructive
// (spec.md §4.3 examples). Matching triggers a warning, never a block.
var DefaultDangerousPatterns = []string{
	"rm -rf /",
	"rm -rf ~",
	"rm -rf *",
	"mkfs",
	"dd if=",
	":(){:|:&};:",
	"> /dev/sda",
	"chmod -R 777 /",
	"chown -R",
	"shutdown",
	"reboot",
	"> /dev/null 2>&1 &",
}

// DefaultInteractivePatterns are command prefixes that require a controlling
// TTY and are therefore refused before dispatch (spec.md §4.3 examples).
var DefaultInteractivePatterns = []string{
	"vim", "vi", "nano", "emacs",
	"top", "htop",
	"less", "more",
	"man",
	"ssh",
	"python", "python3",
	"mysql", "psql", "sqlite3",
	"tmux", "screen",
}
