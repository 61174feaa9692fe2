package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dglai-harvest/pkg/config"
	"dglai-harvest/pkg/httpclient"
	"dglai-harvest/pkg/labels"
	"dglai-harvest/pkg/logging"
	"dglai-harvest/pkg/parser"
	"dglai-harvest/pkg/session"
)

var configFile string

// inspectCmd fetches and parses a single session and prints the result,
// without writing any batch artifacts.
var inspectCmd = &cobra.Command{
	Use:   "dglai-inspect <session-id>",
	Short: "Print the parsed DGLAi entry of one session identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		logger := logging.NewLogger(cfg.Log)
		sessionID := args[0]

		client := httpclient.NewClient(httpclient.ClientType(cfg.Harvest.ClientType), httpclient.WithTimeout(cfg.Harvest.Timeout))
		fetcher := session.NewFetcher(client, cfg.Harvest.URLTemplate, logger)

		fragment, err := fetcher.Fetch(cmd.Context(), sessionID)
		if err != nil {
			if fe, ok := session.AsFetchError(err); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), fe.Failure().Line())
			}
			return err
		}

		var diags labels.Diagnostics
		entry, err := parser.New(labels.NewMapper(nil, nil, logger), logger).ParseEntry(fragment, sessionID, &diags)
		if err != nil {
			return fmt.Errorf("parse session %s: %w", sessionID, err)
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(map[string]any{sessionID: entry}); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), buf.String())

		for _, d := range diags {
			fmt.Fprintln(cmd.ErrOrStderr(), d.Line())
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML config (environment only when empty)")
}

func main() {
	if err := inspectCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
