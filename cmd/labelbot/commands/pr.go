package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ossmaint/labelbot/internal/integrations/github"
)

var (
	prRepo  string
	prToken string
	prTitle string
	prHead  string
	prBase  string
	prBody  string
)

// prCmd groups pull-request subcommands.
var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Pull request helpers",
}

var prCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadFileConfig()
		if err != nil {
			return err
		}
		org, repo, err := resolveRepo(prRepo, cfg)
		if err != nil {
			return err
		}

		client := github.NewClient(ctx, resolveToken(prToken, cfg))
		pr, err := client.CreatePullRequest(ctx, org, repo, prTitle, prHead, prBase, prBody)
		if err != nil {
			return err
		}

		fmt.Printf("Opened pull request #%d: %s\n", pr.GetNumber(), pr.GetHTMLURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prCmd)
	prCmd.AddCommand(prCreateCmd)

	prCmd.PersistentFlags().StringVar(&prRepo, "repo", "", "Target repository (owner/name)")
	prCmd.PersistentFlags().StringVar(&prToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN env var)")

	prCreateCmd.Flags().StringVar(&prTitle, "title", "", "Pull request title (required)")
	prCreateCmd.Flags().StringVar(&prHead, "head", "", "Branch with the changes (required)")
	prCreateCmd.Flags().StringVar(&prBase, "base", "main", "Branch to merge into")
	prCreateCmd.Flags().StringVar(&prBody, "body", "", "Pull request description")

	for _, flag := range []string{"title", "head"} {
		if err := prCreateCmd.MarkFlagRequired(flag); err != nil {
			fmt.Printf("Warning: Failed to mark %s flag as required: %v\n", flag, err)
		}
	}
}
