// Package cli implements the roadtower command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadtower/pkg/buildinfo"
	"github.com/matzehuels/roadtower/pkg/client"
	"github.com/matzehuels/roadtower/pkg/config"
	"github.com/matzehuels/roadtower/pkg/controller"
	"github.com/matzehuels/roadtower/pkg/handoff"
	"github.com/matzehuels/roadtower/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "roadtower"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config config.Config

	configPath string
	backendURL string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Roadtower fetches learning roadmaps and draws them",
		Long:         `Roadtower talks to the roadmap service, hands the roadmap of a user over to the render step, and lays it out as a phase / milestone / subtopic diagram in SVG, JSON, PDF or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/roadtower/config.toml)")
	root.PersistentFlags().StringVar(&c.backendURL, "backend-url", "", "roadmap service URL (overrides config)")

	root.AddCommand(c.openCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.handoffCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, applies flag overrides
// and routes library events to the logger.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.backendURL != "" {
		cfg.Backend.URL = c.backendURL
	}
	c.Config = cfg
	c.Logger.Debug("Loaded config", "backend", cfg.Backend.URL, "handoff", cfg.Handoff.Backend)

	hooks := newLogHooks(c.Logger)
	observability.SetHTTPHooks(hooks)
	observability.SetHandoffHooks(hooks)
	observability.SetRenderHooks(hooks)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newClient creates a backend client from the loaded config.
func (c *CLI) newClient() (*client.Client, error) {
	return client.New(c.Config.Backend.URL, client.WithTimeout(c.Config.Backend.Timeout))
}

// openSlot opens the configured handoff slot. The caller must close it.
func (c *CLI) openSlot(ctx context.Context) (handoff.Slot, error) {
	return handoff.Open(ctx, c.Config.HandoffSlot())
}

// newController wires a controller to the backend and the configured slot.
// The returned function closes the slot.
func (c *CLI) newController(ctx context.Context) (*controller.Controller, func(), error) {
	cl, err := c.newClient()
	if err != nil {
		return nil, nil, err
	}
	slot, err := c.openSlot(ctx)
	if err != nil {
		return nil, nil, err
	}
	closeSlot := func() {
		if err := slot.Close(); err != nil {
			c.Logger.Warn("Closing handoff slot", "err", err)
		}
	}
	return controller.New(cl, slot), closeSlot, nil
}
