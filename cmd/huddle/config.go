package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/huddleai/huddle/pkg/config"
)

// passwordEnv lets scripts and tests supply the password non-interactively.
const passwordEnv = "HUDDLE_PASSWORD"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the encrypted configuration",
	}

	cmd.AddCommand(
		newConfigSetCmd(),
		newConfigShowCmd(),
		newConfigDeleteCmd(),
	)
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var (
		configDir string
		username  string
		provider  string
		apiKey    string
		season    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(configDir, nil)
			if err != nil {
				return err
			}

			cfg := config.Default()
			var password string
			if mgr.Exists() {
				password, err = readPassword("Password: ")
				if err != nil {
					return err
				}
				cfg, err = mgr.Load(password)
				if err != nil {
					return err
				}
			} else {
				password, err = promptNewPassword()
				if err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("username") {
				cfg.Username = username
			}
			if cmd.Flags().Changed("provider") {
				cfg.Provider = provider
			}
			if cmd.Flags().Changed("api-key") {
				cfg.APIKey = apiKey
			}
			if cmd.Flags().Changed("season") {
				cfg.Season = season
			}

			if err := mgr.Save(cfg, password); err != nil {
				return err
			}
			fmt.Printf("Configuration saved to %s\n", mgr.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	cmd.Flags().StringVar(&username, "username", "", "Sleeper username")
	cmd.Flags().StringVar(&provider, "provider", "", "analysis provider (openai, anthropic, mock)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "provider API key")
	cmd.Flags().StringVar(&season, "season", "", "NFL season year")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(configDir)
			if err != nil {
				return err
			}

			fmt.Printf("Username:   %s\n", cfg.Username)
			fmt.Printf("Provider:   %s\n", cfg.Provider)
			fmt.Printf("API key:    %s\n", maskKey(cfg.APIKey))
			fmt.Printf("Season:     %s\n", cfg.Season)
			fmt.Printf("Cache:      enabled=%v ttl=%s\n", cfg.CacheEnabled, cfg.CacheTTL())
			fmt.Printf("Retries:    %d\n", cfg.MaxRetries)
			fmt.Printf("Timeout:    %s\n", cfg.Timeout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	return cmd
}

func newConfigDeleteCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(configDir, nil)
			if err != nil {
				return err
			}
			if err := mgr.Delete(); err != nil {
				return err
			}
			fmt.Println("Configuration deleted.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	return cmd
}

// loadConfig opens the manager, prompts for the password, and decrypts the
// config.
func loadConfig(configDir string) (*config.Config, *config.Manager, error) {
	mgr, err := config.NewManager(configDir, nil)
	if err != nil {
		return nil, nil, err
	}
	if !mgr.Exists() {
		return nil, nil, config.ErrNotConfigured
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := mgr.Load(password)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mgr, nil
}

func readPassword(prompt string) (string, error) {
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func promptNewPassword() (string, error) {
	if pw := os.Getenv(passwordEnv); pw != "" {
		return pw, nil
	}
	pw, err := readPassword("New password: ")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(pw) == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pw, nil
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
