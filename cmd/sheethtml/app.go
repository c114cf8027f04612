package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aerissecure/sheethtml"
	"github.com/aerissecure/sheethtml/config"
	"github.com/aerissecure/sheethtml/internal/logging"
)

const (
	appName    = "sheethtml"
	appVersion = "0.1.0"
)

// app carries the state shared by the commands once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
	stderr     io.Writer
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           appName + " [flags] <input.xlsx>",
		Short:         "Render a spreadsheet worksheet as an HTML table",
		Long:          "sheethtml converts the first (or a named) worksheet of an XLSX workbook into a single\nHTML <table> with borders, fills, fonts, alignment and merged cells as inline CSS.",
		Version:       appVersion,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (YAML, JSON or TOML)")
	config.AddFlags(root.PersistentFlags())
	root.AddCommand(a.mcpCommand())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	w := a.stderr
	if w == nil {
		w = cmd.ErrOrStderr()
	}
	log, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// converter builds a Converter from the loaded configuration. extra options
// are applied last.
func (a *app) converter(extra ...sheethtml.Option) *sheethtml.Converter {
	opts := []sheethtml.Option{
		sheethtml.WithBackend(a.cfg.Backend),
		sheethtml.WithSheet(a.cfg.Sheet),
		sheethtml.WithBeautify(a.cfg.Beautify),
		sheethtml.WithDebug(a.cfg.Debug),
		sheethtml.WithWrapAt(a.cfg.WrapAt),
		sheethtml.WithInclusiveSpans(a.cfg.InclusiveSpans),
		sheethtml.WithLogger(a.log),
	}
	return sheethtml.New(append(opts, extra...)...)
}

// convertFile converts the workbook at path after checking it against the
// configured size limit.
func (a *app) convertFile(conv *sheethtml.Converter, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > a.cfg.MaxFileBytes {
		return "", fmt.Errorf("%s is %d bytes, larger than the %d byte limit", path, info.Size(), a.cfg.MaxFileBytes)
	}
	return conv.ConvertFile(path)
}
