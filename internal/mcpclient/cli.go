package mcpclient

import (
	"fmt"
	"strings"
)

// HandleCommand dispatches `sabi mcp <add|remove|env|list> ...`. Grounded
// verbatim on original_source/src/mcp.rs::handle_mcp_command, including its
// usage/example strings; this is the literal spec for the CLI surface
// spec.md §6 names without spelling out (see SPEC_FULL.md §3).
func HandleCommand(args []string) (string, error) {
	if len(args) == 0 {
		return mcpHelp(), nil
	}

	switch args[0] {
	case "add":
		return handleAdd(args[1:])
	case "remove", "rm":
		return handleRemove(args[1:])
	case "env":
		return handleEnv(args[1:])
	case "list", "ls":
		return handleList()
	case "help":
		return mcpHelp(), nil
	default:
		return "", fmt.Errorf("unknown mcp subcommand %q\n\n%s", args[0], mcpHelp())
	}
}

func mcpHelp() string {
	return `Usage: sabi mcp <add|remove|env|list> [args...]

  sabi mcp add [--transport stdio|http] [--header KEY:VALUE] <name> <command|url> [args...]
  sabi mcp remove <name>
  sabi mcp env <name> KEY=VALUE
  sabi mcp env <name> -d KEY
  sabi mcp list

Examples:
  sabi mcp add filesystem npx -y @modelcontextprotocol/server-filesystem /home
  sabi mcp add -t http -H "API-KEY: xxx" context7 https://mcp.context7.com/mcp
  sabi mcp env brave BRAVE_API_KEY=your-api-key`
}

const addUsage = `Usage: sabi mcp add [--transport stdio|http] [--header KEY:VALUE] <name> <command|url> [args...]

Examples:
  sabi mcp add filesystem npx -y @modelcontextprotocol/server-filesystem /home
  sabi mcp add -t http -H "API-KEY: xxx" context7 https://mcp.context7.com/mcp`

func handleAdd(args []string) (string, error) {
	transport := TransportStdio
	headers := map[string]string{}

	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-t", "--transport":
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s", addUsage)
			}
			i++
			switch args[i] {
			case "stdio":
				transport = TransportStdio
			case "http":
				transport = TransportHTTP
			default:
				return "", fmt.Errorf("unknown transport %q\n\n%s", args[i], addUsage)
			}
		case "-H", "--header":
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s", addUsage)
			}
			i++
			key, value, ok := strings.Cut(args[i], ":")
			if !ok {
				return "", fmt.Errorf("header must be \"KEY: VALUE\", got %q", args[i])
			}
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		default:
			rest = append(rest, args[i])
		}
	}

	if len(rest) < 2 {
		return "", fmt.Errorf("%s", addUsage)
	}
	name, target, extra := rest[0], rest[1], rest[2:]

	servers, err := LoadConfig()
	if err != nil {
		return "", err
	}

	if transport == TransportHTTP {
		AddHTTPServer(servers, name, target, headers)
	} else {
		AddStdioServer(servers, name, target, extra)
	}

	if err := SaveConfig(servers); err != nil {
		return "", err
	}
	return fmt.Sprintf("added mcp server %q (%s)", name, transport), nil
}

func handleRemove(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("Usage: sabi mcp remove <name>")
	}
	servers, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if !RemoveServer(servers, args[0]) {
		return "", fmt.Errorf("no such mcp server %q", args[0])
	}
	if err := SaveConfig(servers); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed mcp server %q", args[0]), nil
}

const envUsage = `Usage: sabi mcp env <name> KEY=VALUE
       sabi mcp env <name> -d KEY`

func handleEnv(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%s", envUsage)
	}
	name := args[0]

	servers, err := LoadConfig()
	if err != nil {
		return "", err
	}

	// sabi mcp env <name> -d KEY
	if args[1] == "-d" {
		if len(args) != 3 {
			return "", fmt.Errorf("%s", envUsage)
		}
		key := args[2]
		if err := RemoveEnv(servers, name, key); err != nil {
			return "", err
		}
		if err := SaveConfig(servers); err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %s from %q", key, name), nil
	}

	// sabi mcp env <name> KEY=VALUE
	if len(args) == 2 && strings.Contains(args[1], "=") {
		key, value, _ := strings.Cut(args[1], "=")
		if err := SetEnv(servers, name, key, value); err != nil {
			return "", err
		}
		if err := SaveConfig(servers); err != nil {
			return "", err
		}
		return fmt.Sprintf("set %s on %q", key, name), nil
	}

	return "", fmt.Errorf("%s", envUsage)
}

func handleList() (string, error) {
	servers, err := LoadConfig()
	if err != nil {
		return "", err
	}
	names := ListServers(servers)
	if len(names) == 0 {
		return "no mcp servers configured", nil
	}

	var b strings.Builder
	for _, name := range names {
		sc := servers[name]
		switch sc.Transport {
		case TransportHTTP:
			fmt.Fprintf(&b, "%s\thttp\t%s\n", name, sc.URL)
		default:
			fmt.Fprintf(&b, "%s\tstdio\t%s %s\n", name, sc.Command, strings.Join(sc.Args, " "))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
