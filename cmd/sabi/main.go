// Command sabi is the entry point: flag parsing, config/provider/mcp wiring,
// and dispatch into either the interactive TUI or one of the single-shot CLI
// modes (spec.md §6). Grounded on hkdb-otui/main.go's startup sequence
// (config load -> debug log init -> storage/program construction -> Run),
// trimmed of the welcome wizard, SSH-passphrase retry loop, and
// single-instance lock: none of those are in spec.md's scope, whose CLI
// surface is flags plus "mcp" subcommands, not a first-run onboarding flow.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Steff96/sabi-tui/internal/config"
	"github.com/Steff96/sabi-tui/internal/core"
	"github.com/Steff96/sabi-tui/internal/llm"
	"github.com/Steff96/sabi-tui/internal/mcpclient"
	"github.com/Steff96/sabi-tui/internal/tui"
)

const version = "0.1.0"

var (
	queryFlag string
	execFlag  string
	safeFlag  bool
)

func main() {
	root := &cobra.Command{
		Use:           "sabi",
		Short:         "sabi is a terminal ReAct AI agent",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
	root.Flags().StringVarP(&queryFlag, "query", "q", "", "ask a single question and print the reply, no TUI")
	root.Flags().StringVarP(&execFlag, "exec", "x", "", "ask a single question; if it proposes a tool call, confirm and run it once")
	root.Flags().BoolVar(&safeFlag, "safe", false, "never execute tool calls; print what would run instead")
	root.AddCommand(newMCPCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if queryFlag != "" && execFlag != "" {
		return fmt.Errorf("-q/--query and -x/--exec are mutually exclusive")
	}

	config.InitDebugLog()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	provider, err := llm.New(cfg.Provider, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize provider %q: %w", cfg.Provider, err)
	}

	servers, err := mcpclient.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load mcp config: %w", err)
	}
	mgr := mcpclient.NewManager(servers)
	for name, startErr := range mgr.StartAll() {
		if startErr != nil && config.Debug {
			config.DebugLog.Printf("mcp server %q failed to start: %v", name, startErr)
		}
	}
	defer mgr.StopAll()

	discoverCtx, discoverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	mcpTools := flattenToolCatalog(mgr.ListAllTools(discoverCtx))
	discoverCancel()

	screens := core.NewScreens(cfg.DangerousPatterns, cfg.InteractivePatterns)
	executor := core.NewExecutor(safeFlag, screens, mgr)

	switch {
	case queryFlag != "":
		return runQuery(cfg, provider, mcpTools, queryFlag)
	case execFlag != "":
		return runExec(cfg, provider, mgr, executor, mcpTools, execFlag)
	default:
		return runTUI(cfg, provider, mgr, executor, mcpTools)
	}
}

// flattenToolCatalog narrows mcpclient's per-server Tool structs down to the
// tool names BuildSystemPrompt needs for the system message (spec.md §3).
func flattenToolCatalog(tools map[string][]mcpclient.Tool) map[string][]string {
	out := make(map[string][]string, len(tools))
	for server, ts := range tools {
		names := make([]string, 0, len(ts))
		for _, t := range ts {
			names = append(names, t.Name)
		}
		out[server] = names
	}
	return out
}

func runTUI(cfg *config.Config, provider llm.Provider, mgr *mcpclient.Manager, executor *core.Executor, mcpTools map[string][]string) error {
	app := core.NewApp(cfg, mcpTools)
	view := tui.NewAppView(app, provider, mgr, executor)
	_, err := tea.NewProgram(view, tea.WithAltScreen()).Run()
	return err
}

// runQuery implements "-q": one chat() call against a fresh session, no
// execution, no TUI. A proposed tool call is described, never run - there is
// no ReviewAction confirmation mechanism outside the TUI.
func runQuery(cfg *config.Config, provider llm.Provider, mcpTools map[string][]string, query string) error {
	app := core.NewApp(cfg, mcpTools)
	app.InputBuffer = query
	if res := app.SubmitInput(); res.Outcome != core.Success {
		return fmt.Errorf("empty query")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	text, err := provider.Chat(ctx, app.Log.Clone())
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	parsed := core.ParseResponse(text)
	if !parsed.IsToolCall {
		fmt.Println(parsed.Text)
		return nil
	}
	fmt.Printf("[tool call proposed, not executed in -q mode] %s\n", parsed.ToolCall.Describe())
	return nil
}

// runExec implements "-x": one chat() call, then - if and only if it
// proposes an allow-listed, non-interactive tool call - a TUI launched
// straight into ReviewAction for that one call, quitting the instant it
// finishes executing. The process exit code mirrors the command's exit code
// (spec.md §6).
func runExec(cfg *config.Config, provider llm.Provider, mgr *mcpclient.Manager, executor *core.Executor, mcpTools map[string][]string, query string) error {
	app := core.NewApp(cfg, mcpTools)
	app.InputBuffer = query
	if res := app.SubmitInput(); res.Outcome != core.Success {
		return fmt.Errorf("empty query")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	text, err := provider.Chat(ctx, app.Log.Clone())
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	parsed := core.ParseResponse(text)
	if !parsed.IsToolCall {
		app.Log.Push(core.Message{Role: core.RoleModel, Content: parsed.Text, Timestamp: time.Now()})
		fmt.Println(parsed.Text)
		return nil
	}

	tc := parsed.ToolCall
	if !core.KnownTool(string(tc.Name)) {
		msg := core.RejectionObservation(string(tc.Name))
		app.Log.Push(msg)
		fmt.Println(msg.Content)
		return nil
	}
	if cmd := core.CommandFor(tc); cmd != "" && app.Screens.IsInteractive(cmd) {
		msg := core.InteractiveRefusalObservation(cmd, app.Screens.Suggestion(cmd))
		app.Log.Push(msg)
		fmt.Println(msg.Content)
		return nil
	}

	app.PendingToolCall = &tc
	app.SetActionText(tc.Describe())
	app.DangerousFlag = core.CommandFor(tc) != "" && app.Screens.IsDangerous(core.CommandFor(tc))
	app.Apply(core.Event{Kind: core.EvToolCallReceived})

	view := tui.NewAppView(app, provider, mgr, executor).WithQuitAfterExec()
	final, err := tea.NewProgram(view, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	if av, ok := final.(tui.AppView); ok {
		code := av.ExitCode()
		if code != 0 {
			os.Exit(code)
		}
	}
	return nil
}
