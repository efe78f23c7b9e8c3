package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ossmaint/labelbot/internal/core/config"
	"github.com/ossmaint/labelbot/internal/integrations/github"
	"github.com/ossmaint/labelbot/internal/labeler"
	"github.com/ossmaint/labelbot/internal/tui"
)

var (
	autolabelRepo          string
	autolabelToken         string
	autolabelState         string
	autolabelCreateMissing bool
	autolabelColor         string
	autolabelSkipLabeled   bool
	autolabelCatalog       []string
	autolabelJSON          bool
	autolabelTUI           bool
)

// autolabelCmd represents the autolabel command
var autolabelCmd = &cobra.Command{
	Use:   "autolabel",
	Short: "Run the auto-labeling pass over a repository's issues",
	Long: `Fetch issues and labels from a repository, evaluate every configured
rule against every issue, and apply the matching labels. With
--create-missing, labels that do not exist yet are created using the
default label color.

Rules come from the config file's 'rules' and 'catalog' sections;
--catalog adds built-in rules on top.`,
	RunE: runAutolabel,
}

func init() {
	rootCmd.AddCommand(autolabelCmd)

	autolabelCmd.Flags().StringVar(&autolabelRepo, "repo", "", "Target repository (owner/name)")
	autolabelCmd.Flags().StringVar(&autolabelToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN env var)")
	autolabelCmd.Flags().StringVar(&autolabelState, "state", "", "Issue state to process: open, closed or all")
	autolabelCmd.Flags().BoolVar(&autolabelCreateMissing, "create-missing", false, "Create labels that do not exist yet")
	autolabelCmd.Flags().StringVar(&autolabelColor, "label-color", "", "Hex color (no #) for auto-created labels")
	autolabelCmd.Flags().BoolVar(&autolabelSkipLabeled, "skip-labeled", false, "Skip issues that already have labels")
	autolabelCmd.Flags().StringSliceVar(&autolabelCatalog, "catalog", nil, "Built-in rules to enable (bug, enhancement, documentation, question, security, performance)")
	autolabelCmd.Flags().BoolVar(&autolabelJSON, "json", false, "Print the result as JSON")
	autolabelCmd.Flags().BoolVar(&autolabelTUI, "tui", false, "Show a live run view")
}

func runAutolabel(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}

	org, repo, err := resolveRepo(autolabelRepo, cfg)
	if err != nil {
		return err
	}

	rules, err := buildRules(cfg, autolabelCatalog)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return fmt.Errorf("no rules configured (add a 'rules' or 'catalog' section to the config, or pass --catalog)")
	}

	patch, err := flagPatch(cmd, cfg)
	if err != nil {
		return err
	}

	client := github.NewClient(ctx, resolveToken(autolabelToken, cfg))
	var gateway labeler.Gateway = github.NewRepoGateway(client, org, repo)

	runID := uuid.NewString()[:8]
	if verbose {
		log.Printf("[autolabel] Run %s: %s/%s, %d rules", runID, org, repo, len(rules))
	}

	if autolabelTUI {
		return runWithTUI(ctx, gateway, patch, rules, runID)
	}

	engine := labeler.New(gateway, patch).AddRules(rules)
	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("run %s failed: %w", runID, err)
	}

	if autolabelJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Print(renderSummary(result))
	return nil
}

// buildRules compiles the config file's rules plus any --catalog names.
func buildRules(cfg *config.Config, extraCatalog []string) ([]labeler.Rule, error) {
	rules, err := cfg.BuildRules()
	if err != nil {
		return nil, err
	}
	extra, err := labeler.CatalogRules(extraCatalog...)
	if err != nil {
		return nil, err
	}
	return append(rules, extra...), nil
}

// flagPatch layers explicitly-set flags on top of the config file's
// labeler settings. Only flags the user actually passed override the file.
func flagPatch(cmd *cobra.Command, cfg *config.Config) (*labeler.ConfigPatch, error) {
	patch := cfg.LabelerPatch()

	if cmd.Flags().Changed("create-missing") {
		patch.CreateMissingLabels = &autolabelCreateMissing
	}
	if cmd.Flags().Changed("label-color") {
		color := strings.TrimPrefix(autolabelColor, "#")
		patch.DefaultLabelColor = &color
	}
	if cmd.Flags().Changed("skip-labeled") {
		relabel := !autolabelSkipLabeled
		patch.RelabelExistingIssues = &relabel
	}
	if cmd.Flags().Changed("state") {
		state, err := labeler.ParseIssueState(autolabelState)
		if err != nil {
			return nil, err
		}
		patch.IssueState = &state
	}
	return patch, nil
}

// runWithTUI executes the run in the background while a bubbletea view
// consumes per-issue status messages from an instrumented gateway.
//
// The view can exit before the run finishes (quit key, inactivity
// timeout), so the run context is canceled once the view returns and the
// engine goroutine is joined before its result or error is read.
func runWithTUI(ctx context.Context, gateway labeler.Gateway, patch *labeler.ConfigPatch, rules []labeler.Rule, runID string) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	statusChan := make(chan tui.IssueStatusMsg, 64)

	reporting := &reportingGateway{Gateway: gateway, status: statusChan, titles: make(map[int]string)}
	engine := labeler.New(reporting, patch).AddRules(rules)

	var (
		result *labeler.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(statusChan)
		result, runErr = engine.Run(runCtx)
		if runErr != nil {
			sendStatus(runCtx, statusChan, tui.IssueStatusMsg{Status: "error", Message: runErr.Error()})
		}
	}()

	program := tea.NewProgram(tui.NewModel(statusChan))
	_, viewErr := program.Run()

	// Unblock any in-flight status send and wait for the goroutine; only
	// after the join are result and runErr safe to read.
	cancel()
	<-done

	if viewErr != nil {
		return fmt.Errorf("run view failed: %w", viewErr)
	}

	output, err := reportOutcome(runID, result, runErr)
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

// reportOutcome turns a joined run's result or error into terminal output.
// A run cut short by the view exiting surfaces as an aborted-run error
// rather than a nil-result summary.
func reportOutcome(runID string, result *labeler.Result, runErr error) (string, error) {
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return "", fmt.Errorf("run %s aborted before completion", runID)
		}
		return "", fmt.Errorf("run %s failed: %w", runID, runErr)
	}
	return renderSummary(result), nil
}

// renderSummary formats a run result for the terminal.
func renderSummary(result *labeler.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Issues processed: %d\n", result.TotalIssues)
	fmt.Fprintf(&sb, "Issues labeled:   %d\n", result.LabeledIssues)
	fmt.Fprintf(&sb, "Labels created:   %d\n", result.LabelsCreated)
	for _, d := range result.Details {
		fmt.Fprintf(&sb, "  #%d %s → %s\n", d.IssueNumber, d.Title, strings.Join(d.AppliedLabels, ", "))
	}
	return sb.String()
}

// reportingGateway decorates a Gateway to emit TUI status messages for
// each mutation, without touching the engine's semantics.
type reportingGateway struct {
	labeler.Gateway
	status chan<- tui.IssueStatusMsg
	titles map[int]string
}

// sendStatus delivers a status message unless the run context is already
// canceled, so a quit view never leaves the engine blocked on an
// undrained channel.
func sendStatus(ctx context.Context, ch chan<- tui.IssueStatusMsg, msg tui.IssueStatusMsg) {
	select {
	case ch <- msg:
	case <-ctx.Done():
	}
}

func (g *reportingGateway) ListIssues(ctx context.Context, state labeler.IssueState) ([]labeler.Issue, error) {
	issues, err := g.Gateway.ListIssues(ctx, state)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		g.titles[issue.Number] = issue.Title
	}
	return issues, nil
}

func (g *reportingGateway) CreateLabel(ctx context.Context, name, color, description string) (*labeler.Label, error) {
	label, err := g.Gateway.CreateLabel(ctx, name, color, description)
	if err != nil {
		return nil, err
	}
	sendStatus(ctx, g.status, tui.IssueStatusMsg{Status: "created-label", Labels: []string{name}})
	return label, nil
}

func (g *reportingGateway) AddLabels(ctx context.Context, issueNumber int, labels []string) error {
	if err := g.Gateway.AddLabels(ctx, issueNumber, labels); err != nil {
		return err
	}
	sendStatus(ctx, g.status, tui.IssueStatusMsg{
		Number: issueNumber,
		Title:  g.titles[issueNumber],
		Status: "labeled",
		Labels: labels,
	})
	return nil
}
