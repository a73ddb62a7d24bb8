package core

import "testing"

func TestParseResponseToolCall(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  ToolCall
	}{
		{
			name:  "run_cmd",
			reply: `Sure, I'll check: {"tool": "run_cmd", "command": "ls -la"}`,
			want:  ToolCall{Name: ToolRunCmd, Command: "ls -la"},
		},
		{
			name:  "run_python",
			reply: "```\n" + `{"tool": "run_python", "code": "print(1)"}` + "\n```",
			want:  ToolCall{Name: ToolRunPython, Code: "print(1)"},
		},
		{
			name:  "read_file",
			reply: `{"tool": "read_file", "path": "/etc/hosts"}`,
			want:  ToolCall{Name: ToolReadFile, Path: "/etc/hosts"},
		},
		{
			name:  "write_file",
			reply: `{"tool": "write_file", "path": "out.txt", "content": "hi"}`,
			want:  ToolCall{Name: ToolWriteFile, Path: "out.txt", Content: "hi"},
		},
		{
			name:  "search defaults directory to .",
			reply: `{"tool": "search", "pattern": "TODO"}`,
			want:  ToolCall{Name: ToolSearch, Pattern: "TODO", Directory: "."},
		},
		{
			name:  "mcp",
			reply: `{"tool": "mcp", "server": "fs", "name": "read", "arguments": {"path": "a"}}`,
			want:  ToolCall{Name: ToolMCP, Server: "fs", ToolMethod: "read", Arguments: map[string]any{"path": "a"}},
		},
		{
			name:  "prose before and after the object is ignored",
			reply: "Let me run this for you.\n\n" + `{"tool": "run_cmd", "command": "pwd"}` + "\n\nDone.",
			want:  ToolCall{Name: ToolRunCmd, Command: "pwd"},
		},
		{
			name:  "nested braces in a string value don't break brace matching",
			reply: `{"tool": "write_file", "path": "x.json", "content": "{\"a\": 1}"}`,
			want:  ToolCall{Name: ToolWriteFile, Path: "x.json", Content: `{"a": 1}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseResponse(tt.reply)
			if !parsed.IsToolCall {
				t.Fatalf("expected a tool call, got text: %q", parsed.Text)
			}
			if parsed.ToolCall.Name != tt.want.Name {
				t.Fatalf("tool = %v, want %v", parsed.ToolCall.Name, tt.want.Name)
			}
			if parsed.ToolCall.Command != tt.want.Command ||
				parsed.ToolCall.Code != tt.want.Code ||
				parsed.ToolCall.Path != tt.want.Path ||
				parsed.ToolCall.Content != tt.want.Content ||
				parsed.ToolCall.Pattern != tt.want.Pattern ||
				parsed.ToolCall.Directory != tt.want.Directory ||
				parsed.ToolCall.Server != tt.want.Server ||
				parsed.ToolCall.ToolMethod != tt.want.ToolMethod {
				t.Fatalf("tool call = %+v, want %+v", parsed.ToolCall, tt.want)
			}
		})
	}
}

func TestParseResponseFallsBackToText(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no object at all", "just a plain text reply, nothing to do here"},
		{"object with no tool field", `here is some data: {"result": 42}`},
		{"object missing a required field", `{"tool": "run_cmd"}`},
		{"malformed json object", `{"tool": "run_cmd", "command": }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseResponse(tt.reply)
			if parsed.IsToolCall {
				t.Fatalf("expected text response, got tool call %+v", parsed.ToolCall)
			}
			if parsed.Text != tt.reply {
				t.Fatalf("text = %q, want original reply %q", parsed.Text, tt.reply)
			}
		})
	}
}

// Grounded on spec.md §8 invariant 4: a tool name outside the allow-list must
// surface as a distinguishable tool call (so the dispatcher can reject it
// with a system message and no execution), not as an ordinary text reply.
func TestParseResponseUnknownToolIsRejectedNotText(t *testing.T) {
	reply := `{"tool": "delete_everything", "path": "/"}`
	parsed := ParseResponse(reply)
	if !parsed.IsToolCall {
		t.Fatalf("expected a (rejectable) tool call, got text: %q", parsed.Text)
	}
	if parsed.ToolCall.Name != "delete_everything" {
		t.Fatalf("tool = %q, want %q", parsed.ToolCall.Name, "delete_everything")
	}
	if KnownTool(string(parsed.ToolCall.Name)) {
		t.Fatalf("%q should not be a known tool", parsed.ToolCall.Name)
	}
}

// Grounded on spec.md §8 invariant 6: Serialize(tc) fed back through
// ParseResponse must reproduce an equivalent ToolCall.
func TestSerializeParseRoundTrip(t *testing.T) {
	calls := []ToolCall{
		{Name: ToolRunCmd, Command: "echo hi"},
		{Name: ToolRunPython, Code: "print(2+2)"},
		{Name: ToolReadFile, Path: "/tmp/x"},
		{Name: ToolWriteFile, Path: "/tmp/x", Content: "data"},
		{Name: ToolSearch, Pattern: "foo", Directory: "/tmp"},
		{Name: ToolMCP, Server: "fs", ToolMethod: "read", Arguments: map[string]any{"path": "a"}},
	}

	for _, tc := range calls {
		t.Run(string(tc.Name), func(t *testing.T) {
			data, err := Serialize(tc)
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			parsed := ParseResponse(string(data))
			if !parsed.IsToolCall {
				t.Fatalf("round trip lost the tool call: %q", data)
			}
			if parsed.ToolCall.Name != tc.Name {
				t.Fatalf("round-tripped tool = %v, want %v", parsed.ToolCall.Name, tc.Name)
			}
			got := parsed.ToolCall
			if got.Command != tc.Command || got.Code != tc.Code || got.Path != tc.Path ||
				got.Content != tc.Content || got.Pattern != tc.Pattern || got.Directory != tc.Directory ||
				got.Server != tc.Server || got.ToolMethod != tc.ToolMethod {
				t.Fatalf("round-tripped tool call = %+v, want %+v", got, tc)
			}
		})
	}
}
