// Package cmd implements the gatewayctl commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/client"
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	baseURL    string
	token      string
	timeout    time.Duration
	retries    int
	configFile string
	envFile    string
	verbose    bool
}

// NewRootCmd builds the gatewayctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gatewayctl",
		Short:         "Call the AI gateway from the command line",
		Long:          "gatewayctl sends chat, embedding, file and tracing requests to the AI gateway.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       gateway.Version,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "", "gateway base URL (overrides GATEWAY_BASE_URL)")
	flags.StringVar(&opts.token, "token", "", "API token (overrides GATEWAY_API_TOKEN)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-attempt timeout, e.g. 30s")
	flags.IntVar(&opts.retries, "retries", gateway.DefaultMaxRetries, "retries after a transport failure")
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file loaded before reading the environment")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newChatCmd(opts),
		newEmbedCmd(opts),
		newFilesCmd(opts),
		newTraceCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newClient resolves the configuration (dotenv, file, environment, flags in
// that order) and returns a gateway client.
func (o *rootOptions) newClient(cmd *cobra.Command) (*client.Client, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	cfg := gateway.NewConfig()
	if o.configFile != "" {
		loaded, err := gateway.LoadConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.WithBaseURL(o.baseURL)
	}
	if flags.Changed("token") {
		cfg.WithAPIToken(o.token)
	}
	if flags.Changed("timeout") {
		cfg.WithTimeout(o.timeout)
	}
	if flags.Changed("retries") {
		cfg.WithMaxRetries(o.retries)
	}

	var gwOpts []gateway.Option
	if o.verbose {
		gwOpts = append(gwOpts, gateway.WithLogger(logger.NewLoggerClient(logger.Config{
			Level:       "Debug",
			ServiceName: "gatewayctl",
		})))
	}
	return client.New(cfg, gwOpts...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
