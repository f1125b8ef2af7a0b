package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kozaktomas/photo-archive/internal/browse"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query-string]",
	Short: "Run a faceted search and print the navigation links",
	Long: `Resolves a search query string such as "t=sunset&p=!jana&pos=t" against the
archive, groups the matching photos by time and prints one link per group.

Examples:
  photo-archive search 't=sunset'
  photo-archive search 'p=jana&since_date=2020-01-01' --authorized
  photo-archive search 'from=120&to=140' --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addScopeFlag(searchCmd, "Include private photos")
	searchCmd.Flags().Bool("json", false, "Output as JSON")
	searchCmd.Flags().String("base", "", "Base path of group links (default /search/)")
}

func runSearch(cmd *cobra.Command, args []string) error {
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
	catalog, err := database.GetCatalog(ctx)
	if err != nil {
		return err
	}
	collection, err := database.GetCollection(ctx)
	if err != nil {
		return err
	}

	raw := ""
	if len(args) == 1 {
		raw = strings.TrimPrefix(args[0], "?")
	}
	scope := scopeFromFlags(cmd)

	res, err := browse.Run(ctx, catalog, collection, browse.Request{
		RawQuery: raw,
		Scope:    scope,
		BasePath: mustGetString(cmd, "base"),
		Reporter: search.LogReporter{},
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}

	summary := browse.Describe(res)
	if res.Query.IsEmpty() {
		summary += " (no filters)"
	}
	fmt.Println(summary)
	for _, l := range res.Links {
		label := l.Label
		if !l.IsGroup() {
			label = fmt.Sprintf("#%d", l.ID)
		}
		fmt.Printf("  %-24s %-12s %s\n", l.Title, label, l.Href)
	}
	return nil
}
