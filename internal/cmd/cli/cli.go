// Package cli implements the psgc command line: entity lookups, hierarchy
// walks, code validation and cache maintenance against the PSGC dataset.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	appclient "github.com/louisbranch/psgc-mcp/internal/app/client"
	entrypoint "github.com/louisbranch/psgc-mcp/internal/platform/cmd"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds CLI configuration loaded from the environment.
type Config struct {
	PSGC    psgc.Config
	Logging logging.Config

	Output string `env:"PSGC_OUTPUT" envDefault:"json"`
}

// ParseConfig loads .env files and the environment into a Config. Flags
// declared by NewRootCommand override it.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Deps overrides runtime collaborators. Zero values use the configured
// HTTP transport and a stderr logger.
type Deps struct {
	Transport psgc.Transport
	Logger    *zap.Logger
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfg     Config
	deps    Deps
	runtime *appclient.Runtime
	logger  *zap.Logger
}

// NewRootCommand builds the psgc command tree.
func NewRootCommand(cfg Config, deps Deps) *cobra.Command {
	a := &app{cfg: cfg, deps: deps}

	root := &cobra.Command{
		Use:   entrypoint.ServiceCLI,
		Short: "Query the Philippine Standard Geographic Code dataset",
		Long: `Query the Philippine Standard Geographic Code dataset.

Responses are cached for the configured TTL. Failed upstream calls are
retried with exponential backoff before an error is reported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "Output format: json or yaml")
	flags.StringVar(&a.cfg.PSGC.BaseURL, "api-url", a.cfg.PSGC.BaseURL, "PSGC API base URL")
	flags.StringVar(&a.cfg.PSGC.CacheBackend, "cache", a.cfg.PSGC.CacheBackend, "Cache backend: memory, sqlite or redis")
	flags.DurationVar(&a.cfg.PSGC.CacheTTL, "cache-ttl", a.cfg.PSGC.CacheTTL, "Cache entry lifetime")
	flags.IntVar(&a.cfg.PSGC.MaxRetries, "max-retries", a.cfg.PSGC.MaxRetries, "Retries after the first failed upstream attempt")
	flags.StringVar(&a.cfg.Logging.Level, "log-level", a.cfg.Logging.Level, "Log level: debug, info, warn or error")

	root.AddCommand(
		a.listCommand(),
		a.getCommand(),
		a.childrenCommand(),
		a.searchCommand(),
		a.hierarchyCommand(),
		a.validateCommand(),
		a.cacheCommand(),
	)
	return root
}

// Execute runs the command tree with args inside the telemetry wrapper.
func Execute(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(cfg, Deps{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCLI, func(ctx context.Context) error {
		return root.ExecuteContext(ctx)
	})
}

// withClient opens the client before run and releases its cache backend
// afterwards.
func (a *app) withClient(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.open(cmd.Context()); err != nil {
			return err
		}
		defer func() {
			if closeErr := a.close(); err == nil {
				err = closeErr
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) open(ctx context.Context) error {
	switch a.cfg.Output {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported output format %q", a.cfg.Output)
	}
	logger := a.deps.Logger
	if logger == nil {
		built, err := logging.New(a.cfg.Logging)
		if err != nil {
			return err
		}
		logger = built
	}
	runtime, err := appclient.Open(ctx, a.cfg.PSGC, a.deps.Transport, logger, nil)
	if err != nil {
		return err
	}
	a.logger = logger
	a.runtime = runtime
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	err := a.runtime.Close()
	a.runtime = nil
	return err
}

func (a *app) client() *psgc.Client {
	return a.runtime.Client
}

// print writes v to the command output in the selected format.
func (a *app) print(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	switch a.cfg.Output {
	case FormatYAML:
		// Round trip through JSON so yaml keys follow the json tags.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return nil
	}
}

func levelUsage() string {
	return "one of " + strings.Join(levelNames(), ", ")
}
