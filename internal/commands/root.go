// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Folio/pkg/cli"
	"Folio/pkg/config"
	"Folio/pkg/engine"
	"Folio/pkg/provider"
	"Folio/pkg/provider/registry"
	"Folio/pkg/util"

	"github.com/spf13/cobra"
)

// DefaultProvider is used when --provider is not given
const DefaultProvider = "mgd"

// commandTimeout bounds a single command
const commandTimeout = 2 * time.Minute

var (
	appEngine  *engine.Engine
	formatter  = cli.DefaultFormatter
	version    = "dev"
	configPath string
	debugMode  bool
	providerID string
	jsonOutput bool
	tableMode  bool
)

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "Folio browses manga catalogs through provider adapters.",
	Long:          "Folio browses manga catalogs through provider adapters. It lists, searches and resolves catalog entries, chapters and pages, and can serve the same operations as a JSON gateway.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		formatter = cli.NewFormatterTo(cmd.OutOrStdout(), false)
		if tableMode {
			formatter.OutputType = cli.OutputTypeTable
		}

		// Initialize engine if not already done
		if appEngine == nil {
			e, err := bootEngine(cmd.Context())
			if err != nil {
				return err
			}
			appEngine = e
		}

		appEngine.SetDebugMode(debugMode)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// bootEngine loads the configuration, creates the engine and loads every
// registered provider
func bootEngine(ctx context.Context) (*engine.Engine, error) {
	path := configPath
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	e, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := registry.LoadAll(e); err != nil {
		return nil, err
	}
	if err := e.InitializeProviders(ctx); err != nil {
		e.Logger.Error("Failed to initialize providers: %v", err)
	}
	return e, nil
}

// SetupEngine makes an existing engine available to all command handlers
func SetupEngine(e *engine.Engine) {
	appEngine = e
}

// SetupVersion sets the version for all commands
func SetupVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if appEngine != nil {
		if shutdownErr := appEngine.Shutdown(); shutdownErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to shut down cleanly: %v\n", shutdownErr)
		}
	}

	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// reportError prints err as JSON in --json mode, else through the formatter
func reportError(w io.Writer, err error) {
	if jsonOutput {
		_ = util.OutputJSON(w, "error", nil, err)
		return
	}
	errFormatter := cli.NewFormatterTo(w, false)
	errFormatter.HandleErrorDebug(err, debugMode)
}

// selectedProvider resolves --provider against the engine
func selectedProvider() (provider.Provider, error) {
	return appEngine.GetProvider(providerID)
}

// commandContext derives the per-command deadline from the command context
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, commandTimeout)
}

// emit writes data as JSON in --json mode, else calls render
func emit(cmd *cobra.Command, data interface{}, render func()) error {
	if jsonOutput {
		return util.OutputJSON(cmd.OutOrStdout(), "success", data, nil)
	}
	render()
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default: $FOLIO_CONFIG, ./folio.yaml, ~/.folio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with detailed error information")
	rootCmd.PersistentFlags().StringVarP(&providerID, "provider", "p", DefaultProvider, "Provider to query")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of formatted output")
	rootCmd.PersistentFlags().BoolVar(&tableMode, "table", false, "Print lists as tables")
}
