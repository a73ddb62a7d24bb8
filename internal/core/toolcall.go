package core

// ToolName is the closed allow-list discriminator for tool calls
// (spec.md §3). Anything else is rejected before execution.
type ToolName string

const (
	ToolRunCmd    ToolName = "run_cmd"
	ToolRunPython ToolName = "run_python"
	ToolReadFile  ToolName = "read_file"
	ToolWriteFile ToolName = "write_file"
	ToolSearch    ToolName = "search"
	ToolMCP       ToolName = "mcp"
)

// KnownTool reports whether name is one of the six allow-listed tools.
func KnownTool(name string) bool {
	switch ToolName(name) {
	case ToolRunCmd, ToolRunPython, ToolReadFile, ToolWriteFile, ToolSearch, ToolMCP:
		return true
	default:
		return false
	}
}

// ToolCall is the tagged union over the allow-list (spec.md §3). Only the
// per-tool fields of the tool selected by Name are meaningful.
type ToolCall struct {
	Name ToolName

	Command   string // run_cmd
	Code      string // run_python
	Path      string // read_file, write_file
	Content   string // write_file
	Pattern   string // search
	Directory string // search

	Server    string         // mcp
	ToolMethod string        // mcp: the name of the tool on that server
	Arguments map[string]any // mcp
}

// Describe renders a short human-readable summary of the call, used in the
// ReviewAction confirmation view and in "would run" safe-mode notices.
func (t ToolCall) Describe() string {
	switch t.Name {
	case ToolRunCmd:
		return "run_cmd: " + t.Command
	case ToolRunPython:
		return "run_python: " + t.Code
	case ToolReadFile:
		return "read_file: " + t.Path
	case ToolWriteFile:
		return "write_file: " + t.Path
	case ToolSearch:
		return "search: \"" + t.Pattern + "\" in " + t.Directory
	case ToolMCP:
		return "mcp: " + t.Server + "." + t.ToolMethod
	default:
		return string(t.Name)
	}
}

// CommandFor returns the shell command text a safety screen should inspect,
// or "" for tool calls with nothing to screen (read_file, write_file,
// search, mcp).
func CommandFor(tc ToolCall) string {
	switch tc.Name {
	case ToolRunCmd:
		return tc.Command
	case ToolRunPython:
		return tc.Code
	default:
		return ""
	}
}

// ParsedResponse is either a ToolCall or a plain TextResponse (spec.md §3).
type ParsedResponse struct {
	IsToolCall bool
	ToolCall   ToolCall
	Text       string
}

// TextResponse builds a text-only ParsedResponse.
func TextResponse(text string) ParsedResponse {
	return ParsedResponse{Text: text}
}

// ToolCallResponse builds a tool-call ParsedResponse.
func ToolCallResponse(tc ToolCall) ParsedResponse {
	return ParsedResponse{IsToolCall: true, ToolCall: tc}
}
