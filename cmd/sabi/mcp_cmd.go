package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Steff96/sabi-tui/internal/mcpclient"
)

// newMCPCommand wires the "sabi mcp ..." surface onto
// internal/mcpclient.HandleCommand, which already owns its own flag parsing
// (grounded on original_source/src/mcp.rs::handle_mcp_command). Cobra here
// is just a router: it strips "mcp" off os.Args and hands the rest straight
// through, rather than re-declaring add/remove/env/list as separate cobra
// subcommands with duplicated flag definitions.
func newMCPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "mcp [add|remove|env|list] [args...]",
		Short:              "manage MCP server configuration",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := mcpclient.HandleCommand(args)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	return cmd
}
