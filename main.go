package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stefanwatt/mini.files/pkg/files/osfile"
	"github.com/stefanwatt/mini.files/pkg/fsutils"
	"github.com/stefanwatt/mini.files/pkg/pathindex"
	"github.com/stefanwatt/mini.files/pkg/ui"
)

var osExit = os.Exit

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts ui.Options
	var trashDir string

	cmd := &cobra.Command{
		Use:   "minifiles [path]",
		Short: "Browse and edit directory listings as text",
		Long: "minifiles renders a chain of directories as editable text columns\n" +
			"and reconciles your edits back into file system operations.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			abs, err := filepath.Abs(fsutils.ExpandHome(target))
			if err != nil {
				return err
			}
			var storeOpts []osfile.Option
			if trashDir != "" {
				storeOpts = append(storeOpts, osfile.WithTrashDir(fsutils.ExpandHome(trashDir)))
			}
			store := osfile.NewStore("/", storeOpts...)
			index := pathindex.New()
			app := ui.NewApp(store, index, opts)
			return app.Run(context.Background(), abs)
		},
	}

	cmd.Flags().BoolVar(&opts.ShowHidden, "hidden", false, "show dot entries")
	cmd.Flags().BoolVar(&opts.PermanentDelete, "permanent-delete", false, "delete permanently instead of staging to trash")
	cmd.Flags().BoolVar(&opts.ShowPreview, "preview", true, "show the preview column")
	cmd.Flags().StringVar(&opts.FuzzyPattern, "filter", "", "fuzzy name filter applied to listings")
	cmd.Flags().StringVar(&trashDir, "trash-dir", "", "staging directory for soft deletes")
	return cmd
}
