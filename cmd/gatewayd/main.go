package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gatewayd/internal/auth"
	"gatewayd/internal/config"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gatewayd:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "gatewayd",
		Short:         "Mock LLM gateway console API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("GATEWAYD_CONFIG"), "Config file (.yaml, .yml, .json or .toml)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	addServeFlags(serve)
	// bare `gatewayd` behaves like `gatewayd serve`
	root.RunE = serve.RunE
	addServeFlags(root)

	root.AddCommand(serve,
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "gatewayd", version)
			},
		},
		&cobra.Command{
			Use:     "hash-secret [secret]",
			Short:   "Print a bcrypt hash usable as access_secret",
			Example: "  gatewayd hash-secret 'my secret'\n  echo -n 'my secret' | gatewayd hash-secret",
			Args:    cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				secret, err := secretArg(cmd.InOrStdin(), args)
				if err != nil {
					return err
				}
				h, err := auth.HashSecret(secret)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), h)
				return nil
			},
		},
	)
	return root
}

func addServeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("addr", "", "HTTP listen address, e.g. :8080")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-format", "", "Log format: console|json")
	f.String("adapters-dir", "", "Directory to scan for adapter weights (*.gguf, *.safetensors)")
	f.Bool("exclusive", true, "Start in exclusive activation mode")
	f.Int64("max-body-bytes", 0, "Maximum JSON request body size")
	f.String("cors-origins", "", "Comma-separated CORS origins; enables CORS when set")
}

// loadConfig layers defaults, the config file, GATEWAYD_* env vars and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command, path string) (config.Config, error) {
	cfg := config.Defaults()
	if path != "" {
		fc, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = config.Merge(cfg, fc)
	}
	ec, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	cfg = config.Merge(cfg, ec)
	cfg = config.Merge(cfg, flagConfig(cmd))
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func flagConfig(cmd *cobra.Command) config.Config {
	var c config.Config
	f := cmd.Flags()
	if f.Changed("addr") {
		c.Addr, _ = f.GetString("addr")
	}
	if f.Changed("log-level") {
		c.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-format") {
		c.LogFormat, _ = f.GetString("log-format")
	}
	if f.Changed("adapters-dir") {
		c.AdaptersDir, _ = f.GetString("adapters-dir")
	}
	if f.Changed("exclusive") {
		on, _ := f.GetBool("exclusive")
		c.ExclusiveMode = &on
	}
	if f.Changed("max-body-bytes") {
		c.MaxBodyBytes, _ = f.GetInt64("max-body-bytes")
	}
	if f.Changed("cors-origins") {
		v, _ := f.GetString("cors-origins")
		if c.CORSOrigins = splitCSV(v); len(c.CORSOrigins) > 0 {
			c.CORSEnabled = true
		}
	}
	return c
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func secretArg(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		if args[0] == "" {
			return "", errors.New("secret must not be empty")
		}
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("secret must not be empty")
	}
	return line, nil
}
