package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/woozymasta/geoprop/internal/config"
	"github.com/woozymasta/geoprop/internal/geo"
	"github.com/woozymasta/geoprop/internal/logger"
	"github.com/woozymasta/geoprop/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file, built-in defaults if empty"`
	Input      string `short:"i" long:"in"      description:"Input GeoJSON file path. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"     description:"Output file path. Writes to stdout if empty"`
	Column     string `short:"C" long:"column"  description:"Property column to filter on. Defaults to 'name' or the first column"`
	Pattern    string `short:"e" long:"pattern" description:"Case-insensitive regex pattern. Empty matches everything"`
	Table      bool   `short:"t" long:"table"   description:"Print the property table as TSV instead of GeoJSON"`
	Viewport   bool   `short:"V" long:"viewport" description:"Print the viewport of the filtered features instead of GeoJSON"`
	Compact    bool   `long:"compact" description:"Compact JSON output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to read input file")
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
	}

	fc, err := processor.Parse(inputData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse GeoJSON")
	}

	for _, warning := range processor.Validate(fc) {
		log.Warn().Int("feature", warning.Feature).Msg(warning.Message)
	}

	table := processor.BuildTable(fc)

	column := opts.Column
	if column == "" {
		if table.HasColumn(cfg.DefaultFilterColumn) {
			column = cfg.DefaultFilterColumn
		} else {
			column = processor.DefaultFilterColumn(table)
		}
	}

	filtered, err := processor.FilterTable(table, column, opts.Pattern)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to apply filter")
	}

	log.Info().
		Str("column", column).
		Str("pattern", opts.Pattern).
		Int("matched", len(filtered.Rows)).
		Int("total", len(table.Rows)).
		Msg("Filter applied")

	var outputData []byte
	switch {
	case opts.Table:
		outputData = []byte(renderTSV(filtered))

	case opts.Viewport:
		features, err := processor.FilterFeatures(fc, column, opts.Pattern)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to apply filter")
		}

		viewport, err := geo.ComputeViewport(features, cfg.Viewport())
		if errors.Is(err, geo.ErrNoGeometry) {
			log.Warn().Msg("No usable coordinates, falling back to default viewport")
		}

		outputData, err = json.Marshal(viewport)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to marshal viewport")
		}
		outputData = append(outputData, '\n')

	default:
		features, err := processor.FilterFeatures(fc, column, opts.Pattern)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to apply filter")
		}

		outputData, err = processor.Export(features, opts.Compact || cfg.ExportCompact)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to export GeoJSON")
		}
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output file")
		}
		log.Info().Str("path", opts.Output).Msg("Output written")
	} else {
		fmt.Print(string(outputData))
	}
}

// renderTSV formats a property table as tab-separated text with a header row.
func renderTSV(table *processor.PropertyTable) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(table.Columns, "\t"))
	sb.WriteByte('\n')

	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, column := range table.Columns {
			cells[i] = processor.Stringify(row.Values[column])
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteByte('\n')
	}

	return sb.String()
}
