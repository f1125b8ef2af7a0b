package cmd

import (
	"fmt"

	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/spf13/cobra"
)

// mustGet reads a flag through one of the pflag getters. Flags are defined in
// init(), so a lookup error is a programming bug and panics.
func mustGet[T any](name string, get func(string) (T, error)) T {
	val, err := get(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	return mustGet(name, cmd.Flags().GetBool)
}

func mustGetInt(cmd *cobra.Command, name string) int {
	return mustGet(name, cmd.Flags().GetInt)
}

func mustGetString(cmd *cobra.Command, name string) string {
	return mustGet(name, cmd.Flags().GetString)
}

// addScopeFlag defines --authorized, which lets local commands see private
// photos the way an API token does over HTTP.
func addScopeFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().Bool("authorized", false, usage)
}

// scopeFromFlags returns the scope selected by --authorized.
func scopeFromFlags(cmd *cobra.Command) gallery.Scope {
	if mustGetBool(cmd, "authorized") {
		return gallery.Scope{Authorized: true}
	}
	return gallery.Public
}
