package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pricelens/backend/internal/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Answer a single query and exit",
	Long: `Runs one query through the same pipeline as the HTTP API and prints the reply.
Input errors (empty or overlong query) exit with a non-zero status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := stderrLogger(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	reply, err := a.agent.Handle(ctx, domain.AgentRequest{Query: strings.Join(args, " ")})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(reply)
	}
	_, err = fmt.Fprintln(out, reply.Message)
	return err
}
