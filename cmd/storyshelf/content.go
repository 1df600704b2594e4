package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/storyshelf/storyshelf/internal/api"
	"github.com/storyshelf/storyshelf/internal/story"
	"github.com/storyshelf/storyshelf/internal/storycontent"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Encode and inspect binary story content files",
}

var contentEncodeCmd = &cobra.Command{
	Use:   "encode <pages.yaml> <out.bin>",
	Short: "Encode a YAML list of pages into a binary content file",
	Long: `Encode a YAML list of pages into a binary content file.

Input layout:
  - title: Chapter 1
    content: ["line one", "line two"]
  - title: Chapter 2
    content: []`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var pages []story.Page
		if err := yaml.Unmarshal(data, &pages); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}
		if err := os.WriteFile(args[1], storycontent.Encode(pages), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", len(pages), args[1])
		return nil
	},
}

var contentDecodeCmd = &cobra.Command{
	Use:   "decode <file.bin>",
	Short: "Decode a binary content file and print its pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		pages, err := storycontent.Decode(data)
		if err != nil {
			return err
		}
		return api.Output(pages)
	},
}

func init() {
	contentCmd.AddCommand(contentEncodeCmd)
	contentCmd.AddCommand(contentDecodeCmd)
	rootCmd.AddCommand(contentCmd)
}
