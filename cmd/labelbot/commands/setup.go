package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ossmaint/labelbot/internal/core/config"
	"github.com/ossmaint/labelbot/internal/integrations/github"
)

// loadFileConfig loads the config file if one exists, resolving remote
// inheritance through the GitHub contents API. A missing file is not an
// error; commands fall back to flags and environment variables.
func loadFileConfig() (*config.Config, error) {
	path := config.FindConfigPath(cfgFile)
	if path == "" {
		if cfgFile != "" {
			return nil, fmt.Errorf("config file %s not found", cfgFile)
		}
		if verbose {
			fmt.Println("No configuration file found. Using flags and environment variables.")
		}
		return &config.Config{}, nil
	}

	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, refPath, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}
		client := github.NewClient(context.Background(), token)
		return client.GetFileContent(context.Background(), org, repo, refPath, branch)
	}

	cfg, err := config.LoadWithInheritance(path, fetcher)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Loaded config from %s\n", path)
	}
	return cfg, nil
}

// resolveRepo determines the target org/repo from the --repo flag
// (owner/name) or the config file.
func resolveRepo(flagRepo string, cfg *config.Config) (org, repo string, err error) {
	if flagRepo != "" {
		parts := strings.Split(flagRepo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid --repo value %q (expected owner/name)", flagRepo)
		}
		return parts[0], parts[1], nil
	}
	if cfg.GitHub.Org != "" && cfg.GitHub.Repo != "" {
		return cfg.GitHub.Org, cfg.GitHub.Repo, nil
	}
	return "", "", fmt.Errorf("no repository specified (use --repo or set github.org/github.repo in the config)")
}

// resolveToken determines the GitHub token from the --token flag, config
// file, or GITHUB_TOKEN environment variable, in that order.
func resolveToken(flagToken string, cfg *config.Config) string {
	if flagToken != "" {
		return flagToken
	}
	if cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}
