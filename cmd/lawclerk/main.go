package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/lawclerk/internal/config"
	"github.com/stellarlinkco/lawclerk/internal/gateway"
)

// CaseRunner runs one case through the pipeline (allows mocking in tests)
type CaseRunner interface {
	RunCase(ctx context.Context, userID, prompt string, files []string, channelName, chatID string) (*gateway.Response, error)
	Shutdown() error
}

// RunnerFactory creates a CaseRunner instance
type RunnerFactory func(cfg *config.Config) (CaseRunner, error)

// DefaultRunnerFactory builds the full gateway
func DefaultRunnerFactory(cfg *config.Config) (CaseRunner, error) {
	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("API key not set. Run 'lawclerk onboard' or set LAWCLERK_API_KEY / ANTHROPIC_API_KEY")
	}
	return gateway.New(cfg)
}

// CaseOptions for running a case with custom dependencies
type CaseOptions struct {
	RunnerFactory RunnerFactory
	Stdout        io.Writer
	Stderr        io.Writer
}

var rootCmd = &cobra.Command{
	Use:   "lawclerk",
	Short: "lawclerk - legal case assistant",
}

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Run a single case description through the pipeline",
	RunE:  runCase,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the full gateway (channels + reminders)",
	RunE:  runServe,
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize config and storage",
	RunE:  runOnboard,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show lawclerk status",
	RunE:  runStatus,
}

var (
	messageFlag string
	userFlag    string
	fileFlags   []string
)

func init() {
	caseCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Case description")
	caseCmd.Flags().StringVarP(&userFlag, "user", "u", "cli", "User ID owning the case file")
	caseCmd.Flags().StringSliceVarP(&fileFlags, "file", "f", nil, "Attached document names")
	rootCmd.AddCommand(caseCmd, serveCmd, onboardCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCase is the command handler that uses default options
func runCase(cmd *cobra.Command, args []string) error {
	return runCaseWithOptions(CaseOptions{})
}

// runCaseWithOptions runs a case with injectable dependencies for testing
func runCaseWithOptions(opts CaseOptions) error {
	if messageFlag == "" {
		return fmt.Errorf("case description is required (use -m)")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	factory := opts.RunnerFactory
	if factory == nil {
		factory = DefaultRunnerFactory
	}

	runner, err := factory(cfg)
	if err != nil {
		return err
	}
	defer runner.Shutdown()

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	resp, err := runner.RunCase(context.Background(), userFlag, messageFlag, fileFlags, "cli", userFlag)
	if err != nil {
		return fmt.Errorf("run case: %w", err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		return fmt.Errorf("API key not set. Run 'lawclerk onboard' or set LAWCLERK_API_KEY / ANTHROPIC_API_KEY")
	}

	gw, err := gateway.New(cfg)
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}

	return gw.Run(context.Background())
}

func runOnboard(cmd *cobra.Command, args []string) error {
	cfgDir := config.ConfigDir()
	cfgPath := config.ConfigPath()

	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data, _ := json.MarshalIndent(cfg, "", "  ")
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("Created config: %s\n", cfgPath)
	} else {
		fmt.Printf("Config already exists: %s\n", cfgPath)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.Storage.Dir, "artifacts"), 0755); err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	fmt.Printf("Storage ready: %s\n", cfg.Storage.Dir)
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s to set your API key\n", cfgPath)
	fmt.Println("  2. Or set LAWCLERK_API_KEY environment variable")
	fmt.Println("  3. Run 'lawclerk case -m \"I got a speeding ticket\"' to test")

	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Config: error (%v)\n", err)
		return nil
	}

	fmt.Printf("Config: %s\n", config.ConfigPath())
	fmt.Printf("Model: %s\n", cfg.Assistant.Model)
	fmt.Printf("Jurisdiction: %s\n", cfg.Assistant.Jurisdiction)
	if cfg.Provider.APIKey != "" && len(cfg.Provider.APIKey) > 8 {
		masked := cfg.Provider.APIKey[:4] + "..." + cfg.Provider.APIKey[len(cfg.Provider.APIKey)-4:]
		fmt.Printf("API Key: %s\n", masked)
	} else if cfg.Provider.APIKey != "" {
		fmt.Println("API Key: set")
	} else {
		fmt.Println("API Key: not set")
	}
	fmt.Printf("Telegram: enabled=%v\n", cfg.Channels.Telegram.Enabled)
	fmt.Printf("Web: enabled=%v (port %d)\n", cfg.Channels.Web.Enabled, cfg.Gateway.Port)
	fmt.Printf("Storage: %s\n", cfg.Storage.Dir)
	fmt.Printf("Case files: %s\n", cfg.Storage.DBPath)

	if _, err := os.Stat(cfg.Storage.Dir); err != nil {
		fmt.Println("Storage: not found (run 'lawclerk onboard')")
	}

	return nil
}
