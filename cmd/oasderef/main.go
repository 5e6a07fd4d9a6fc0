// Command oasderef resolves every internal $ref in an OpenAPI 3.1 document
// and writes the self-contained result.
package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/oaskit/deref/openapi"
)

// version is set at build time via ldflags.
var version = "dev"

type config struct {
	outputFile string
	asYAML     bool
	indent     int
	quiet      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config{}
	cmd := &cobra.Command{
		Use:     "oasderef <input-file>",
		Short:   "Dereference an OpenAPI 3.1 document",
		Long:    "Resolves every internal $ref in an OpenAPI 3.1 document and writes a fully self-contained document to stdout or a file.",
		Version: version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cfg.quiet)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(args[0], cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.outputFile, "out", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVar(&cfg.asYAML, "yaml", false, "Write YAML instead of JSON")
	cmd.Flags().IntVar(&cfg.indent, "indent", 2, "JSON indentation width")
	cmd.Flags().BoolVarP(&cfg.quiet, "quiet", "q", false, "Suppress diagnostics")

	return cmd
}

func setupLogging(quiet bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func run(inputFile string, cfg config) error {
	inputFile = filepath.Clean(inputFile)

	data, err := os.ReadFile(inputFile)
	if err != nil {
		log.Error().Err(err).Str("file", inputFile).Msg("failed to read input")
		return err
	}

	d, err := openapi.NewDereferencer(data)
	if err != nil {
		log.Error().Err(err).Str("file", inputFile).Msg("failed to parse document")
		return err
	}

	if err := d.Dereference(); err != nil {
		log.Error().Err(err).Str("file", inputFile).Msg("failed to dereference document")
		return err
	}

	log.Info().Str("file", inputFile).Msg("document dereferenced")

	out := os.Stdout
	if cfg.outputFile != "" {
		f, err := os.Create(filepath.Clean(cfg.outputFile))
		if err != nil {
			log.Error().Err(err).Str("file", cfg.outputFile).Msg("failed to create output file")
			return err
		}
		defer f.Close()
		out = f
	}

	if cfg.asYAML {
		err = d.WriteYAML(out)
	} else {
		err = d.WriteJSON(cfg.indent, out)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to write document")
		return err
	}

	if cfg.outputFile != "" {
		log.Info().Str("file", cfg.outputFile).Msg("document written")
	}

	return nil
}
