package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyshelf/storyshelf/internal/seed"
	"github.com/storyshelf/storyshelf/internal/storage/fsblob"
	"github.com/storyshelf/storyshelf/internal/storage/sqlitekv"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Write stories from a YAML file into the on-disk stores",
	Long: `Write namespaces and stories from a YAML file into the SQLite metadata
store and the content directory. Existing overviews and content with the
same keys are replaced.

File layout:
  namespaces:
    - name: tales
      stories:
        - story_id: s1
          story_name: First Story
          pages:
            - title: Chapter 1
              content: ["line one", "line two"]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := getHome()
		if err != nil {
			return err
		}
		cfgMgr, err := getConfig(h)
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		kv, err := sqlitekv.Open(ctx, h.KVPath(cfg.Storage.KVPath))
		if err != nil {
			return err
		}
		defer kv.Close()
		blobs := fsblob.New(h.BlobsPath(cfg.Storage.BlobDir))

		n, err := seed.LoadFile(ctx, args[0], kv, blobs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stories (metadata: %s, content: %s)\n", n, kv.Path(), blobs.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
