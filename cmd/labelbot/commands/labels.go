package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ossmaint/labelbot/internal/integrations/github"
)

var (
	labelsRepo  string
	labelsToken string

	createName        string
	createColor       string
	createDescription string
)

// labelsCmd groups label management subcommands.
var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Manage repository labels",
}

var labelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all labels in a repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadFileConfig()
		if err != nil {
			return err
		}
		org, repo, err := resolveRepo(labelsRepo, cfg)
		if err != nil {
			return err
		}

		client := github.NewClient(ctx, resolveToken(labelsToken, cfg))
		labels, err := client.ListRepoLabels(ctx, org, repo)
		if err != nil {
			return err
		}

		for _, l := range labels {
			if l.GetDescription() != "" {
				fmt.Printf("%-24s #%s  %s\n", l.GetName(), l.GetColor(), l.GetDescription())
			} else {
				fmt.Printf("%-24s #%s\n", l.GetName(), l.GetColor())
			}
		}
		return nil
	},
}

var labelsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a label in a repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadFileConfig()
		if err != nil {
			return err
		}
		org, repo, err := resolveRepo(labelsRepo, cfg)
		if err != nil {
			return err
		}

		client := github.NewClient(ctx, resolveToken(labelsToken, cfg))
		label, err := client.CreateLabel(ctx, org, repo, createName, createColor, createDescription)
		if err != nil {
			return err
		}

		fmt.Printf("Created label %s (#%s)\n", label.GetName(), label.GetColor())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
	labelsCmd.AddCommand(labelsListCmd)
	labelsCmd.AddCommand(labelsCreateCmd)

	labelsCmd.PersistentFlags().StringVar(&labelsRepo, "repo", "", "Target repository (owner/name)")
	labelsCmd.PersistentFlags().StringVar(&labelsToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN env var)")

	labelsCreateCmd.Flags().StringVar(&createName, "name", "", "Label name (required)")
	labelsCreateCmd.Flags().StringVar(&createColor, "color", "0075ca", "Hex color, with or without leading #")
	labelsCreateCmd.Flags().StringVar(&createDescription, "description", "", "Label description")

	if err := labelsCreateCmd.MarkFlagRequired("name"); err != nil {
		fmt.Printf("Warning: Failed to mark name flag as required: %v\n", err)
	}
}
