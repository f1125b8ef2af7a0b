package cmd

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kozaktomas/photo-archive/internal/constants"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/spf13/cobra"
)

var facetCmd = &cobra.Command{
	Use:   "facet",
	Short: "Manage tags, people and places",
}

var facetAddCmd = &cobra.Command{
	Use:   "add <kind> <name>",
	Short: "Create a tag, person or place",
	Long: `Creates a facet of the given kind ("tag", "person", "place" or their
one letter keys t, p, l). The slug is derived from the name. If a facet with
that slug already exists it is printed unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: runFacetAdd,
}

func init() {
	rootCmd.AddCommand(facetCmd)
	facetCmd.AddCommand(facetAddCmd)
}

func runFacetAdd(cmd *cobra.Command, args []string) error {
	kind, ok := gallery.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q (want tag, person or place)", args[0])
	}
	name := strings.TrimSpace(args[1])
	if name == "" || utf8.RuneCountInString(name) > constants.MaxFacetNameLength {
		return fmt.Errorf("name must be 1 to %d characters", constants.MaxFacetNameLength)
	}

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
	writer, err := database.GetFacetWriter(ctx)
	if err != nil {
		return err
	}

	f, err := writer.EnsureFacet(ctx, kind, name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}

	fmt.Printf("%s %d: %s (%s=%s)\n", kind, f.FacetID(), f.FacetName(), kind.Key(), f.FacetSlug())
	return nil
}
