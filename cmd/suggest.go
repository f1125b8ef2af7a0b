package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <term>",
	Short: "List tags, people and places whose name contains a term",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	addScopeFlag(suggestCmd, "Include facets only attached to private photos")
	suggestCmd.Flags().Bool("json", false, "Output as JSON")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	ctx := context.Background()
	completer, err := database.GetCompleter(ctx)
	if err != nil {
		return err
	}

	scope := scopeFromFlags(cmd)

	suggestions, err := database.Suggest(ctx, completer, scope, args[0])
	if err != nil {
		return fmt.Errorf("autocomplete failed: %w", err)
	}

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Println("No matches")
		return nil
	}
	for _, s := range suggestions {
		fmt.Printf("  %s=%-24s %s\n", s.Kind, s.Slug, s.Name)
	}
	return nil
}
