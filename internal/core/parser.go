package core

import (
	"encoding/json"
)

// ParseResponse implements spec.md §4.2: locate the first JSON object literal
// in reply that contains a "tool" string field, decode it into a ToolCall by
// the "tool" discriminator, and fall back to a TextResponse otherwise.
//
// Grounded on hkdb-otui's provider/openai.go leaked-tool-call recovery
// (ParseLeakedJSONToolCalls) — the teacher's own analog of "forgive prose
// around a JSON tool call embedded in free model text" — narrowed to the
// spec's exact single-first-match algorithm.
func ParseResponse(reply string) ParsedResponse {
	obj, ok := firstToolObject(reply)
	if !ok {
		return TextResponse(reply)
	}

	tc, ok := decodeToolCall(obj)
	if !ok {
		return TextResponse(reply)
	}
	return ToolCallResponse(tc)
}

// firstToolObject scans reply for balanced {...} substrings (tolerating
// surrounding markdown fences and prose, since those live outside any brace
// pair) and returns the decoded contents of the first one that both parses
// as a JSON object and carries a string "tool" field.
func firstToolObject(reply string) (map[string]any, bool) {
	for i := 0; i < len(reply); i++ {
		if reply[i] != '{' {
			continue
		}
		end, ok := matchingBrace(reply, i)
		if !ok {
			continue
		}
		candidate := reply[i : end+1]

		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			continue
		}
		if _, ok := obj["tool"].(string); ok {
			return obj, true
		}
	}
	return nil, false
}

// matchingBrace returns the index of the brace matching the '{' at start,
// correctly skipping over braces that appear inside JSON string literals.
func matchingBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// decodeToolCall decodes obj's "tool" discriminator into a ToolCall. A
// discriminator outside the allow-list still decodes successfully, carrying
// just the unknown Name and no per-tool fields: spec.md §3/§8 invariant 4
// requires such a call be surfaced as a rejected tool call (so the caller can
// append a RejectionObservation with no execution), not silently demoted to
// a plain text response.
func decodeToolCall(obj map[string]any) (ToolCall, bool) {
	name, _ := obj["tool"].(string)
	if !KnownTool(name) {
		return ToolCall{Name: ToolName(name)}, true
	}

	str := func(key string) string {
		v, _ := obj[key].(string)
		return v
	}

	tc := ToolCall{Name: ToolName(name)}
	switch tc.Name {
	case ToolRunCmd:
		tc.Command = str("command")
		if tc.Command == "" {
			return ToolCall{}, false
		}
	case ToolRunPython:
		tc.Code = str("code")
		if tc.Code == "" {
			return ToolCall{}, false
		}
	case ToolReadFile:
		tc.Path = str("path")
		if tc.Path == "" {
			return ToolCall{}, false
		}
	case ToolWriteFile:
		tc.Path = str("path")
		tc.Content = str("content")
		if tc.Path == "" {
			return ToolCall{}, false
		}
	case ToolSearch:
		tc.Pattern = str("pattern")
		tc.Directory = str("directory")
		if tc.Pattern == "" {
			return ToolCall{}, false
		}
		if tc.Directory == "" {
			tc.Directory = "."
		}
	case ToolMCP:
		tc.Server = str("server")
		tc.ToolMethod = str("name")
		if tc.Server == "" || tc.ToolMethod == "" {
			return ToolCall{}, false
		}
		if args, ok := obj["arguments"].(map[string]any); ok {
			tc.Arguments = args
		} else {
			tc.Arguments = map[string]any{}
		}
	default:
		return ToolCall{}, false
	}

	return tc, true
}

// Serialize renders a ToolCall back to the JSON object form a model would
// emit, used by the round-trip test in spec.md §8 invariant 6.
func Serialize(tc ToolCall) ([]byte, error) {
	obj := map[string]any{"tool": string(tc.Name)}
	switch tc.Name {
	case ToolRunCmd:
		obj["command"] = tc.Command
	case ToolRunPython:
		obj["code"] = tc.Code
	case ToolReadFile:
		obj["path"] = tc.Path
	case ToolWriteFile:
		obj["path"] = tc.Path
		obj["content"] = tc.Content
	case ToolSearch:
		obj["pattern"] = tc.Pattern
		obj["directory"] = tc.Directory
	case ToolMCP:
		obj["server"] = tc.Server
		obj["name"] = tc.ToolMethod
		obj["arguments"] = tc.Arguments
	}
	return json.Marshal(obj)
}
