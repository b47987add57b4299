package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"record-mapper/internal/config"
	"record-mapper/internal/logctx"
	"record-mapper/internal/mapping"
	"record-mapper/internal/match"
)

// app holds the state shared by the subcommands.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "recordmap",
		Short:        "Read and write flat record files",
		Long:         `Read and write CSV, delimited and fixed-length record files described by a YAML layout file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "config file (default ./recordmap.yaml)")
	f.StringP("layout", "l", "", "layout file (default layout.yaml)")
	f.StringP("stream", "s", "", "stream to use when the layout declares several")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.String("log-format", "", "log format: text or json")
	f.Bool("otel", false, "also send logs to the OpenTelemetry log bridge")

	for key, flag := range map[string]string{
		"layout":            "layout",
		"stream":            "stream",
		"log.level":         "log-level",
		"log.format":        "log-format",
		"telemetry.enabled": "otel",
	} {
		if err := a.v.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(fmt.Errorf("failed to bind flag %s: %w", flag, err))
		}
	}

	cmd.AddCommand(
		newCheckCmd(a),
		newLayoutCmd(a),
		newParseCmd(a),
		newFormatCmd(a),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	a.cfg = cfg

	logger, err := setupLogging(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(logctx.WithLogger(ctx, logger))

	return nil
}

// layoutPath prefers a positional argument over the configured layout.
func (a *app) layoutPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return a.cfg.Layout
}

func (a *app) loadLayout(ctx context.Context, path string) (*mapping.LayoutFile, error) {
	lf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logctx.FromContext(ctx).Debug("loaded layout", "path", path, "streams", len(lf.Streams))

	return lf, nil
}

// selectStream returns the configured stream, or the only one.
func (a *app) selectStream(lf *mapping.LayoutFile) (*mapping.StreamDef, error) {
	if a.cfg.Stream == "" {
		if len(lf.Streams) == 1 {
			return &lf.Streams[0], nil
		}

		return nil, fmt.Errorf("the layout declares %d streams; select one with --stream", len(lf.Streams))
	}

	if s := lf.Stream(a.cfg.Stream); s != nil {
		return s, nil
	}

	names := make([]string, 0, len(lf.Streams))
	for _, s := range lf.Streams {
		names = append(names, s.Name)
	}

	if suggestions := match.Suggest(a.cfg.Stream, names, 1); len(suggestions) > 0 {
		return nil, fmt.Errorf("unknown stream %q (did you mean %q?)", a.cfg.Stream, suggestions[0])
	}

	return nil, fmt.Errorf("unknown stream %q", a.cfg.Stream)
}

// openInput opens the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	return f, nil
}

// openOutput creates the named file, or returns stdout for "" and "-".
// Closing the result never closes stdout.
func openOutput(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
