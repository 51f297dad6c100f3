// Copyright © 2024 The MNL authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mnl-lang/mnl/diagnostic"
	"github.com/mnl-lang/mnl/parser"
	"github.com/mnl-lang/mnl/parser/reader"
	"github.com/mnl-lang/mnl/tracing"
	"github.com/spf13/viper"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Setting keys shared by flags, the config file and MNL_* variables.
const (
	keyColor         = "color"
	keyScanner       = "scanner"
	keyMaxDepth      = "max-depth"
	keyPoolLimit     = "pool-limit"
	keyValidateDots  = "validate-dots"
	keyStripComments = "strip-comments"
	keyTrace         = "trace"
	keyTraceDepth    = "trace-depth"
)

var settingKeys = []string{
	keyColor,
	keyScanner,
	keyMaxDepth,
	keyPoolLimit,
	keyValidateDots,
	keyStripComments,
	keyTrace,
	keyTraceDepth,
}

type settings struct {
	v       *viper.Viper
	cfgFile string
}

// initConfig reads in the config file and environment variables.
func (s *settings) initConfig() error {
	if s.cfgFile != "" {
		s.v.SetConfigFile(s.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			s.v.AddConfigPath(home)
		}
		s.v.SetConfigName(".mnl")
	}
	s.v.SetEnvPrefix("mnl")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	err := s.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (s *settings) colorMode() (diagnostic.ColorMode, error) {
	return diagnostic.ParseColorMode(s.v.GetString(keyColor))
}

// newRenderer returns a renderer for read errors.  Sources holds text that
// was not read from a file.
func (s *settings) newRenderer(sources map[string]string) (*diagnostic.Renderer, error) {
	mode, err := s.colorMode()
	if err != nil {
		return nil, err
	}
	return &diagnostic.Renderer{Color: mode, Sources: sources}, nil
}

// newParser returns a parser built from the settings.  The returned function
// must be called once reading is finished.  Traces are written to traceOut.
func (s *settings) newParser(traceOut io.Writer) (*parser.Parser, func(), error) {
	scanner, err := parser.ParseScanner(s.v.GetString(keyScanner))
	if err != nil {
		return nil, nil, err
	}
	ropts := []reader.Option{
		reader.WithDotValidation(s.v.GetBool(keyValidateDots)),
		reader.WithMaxDepth(s.v.GetInt(keyMaxDepth)),
		reader.WithPoolLimit(s.v.GetInt(keyPoolLimit)),
	}
	prof, done, err := s.newProfiler(traceOut)
	if err != nil {
		return nil, nil, err
	}
	if prof != nil {
		ropts = append(ropts, reader.WithProfiler(prof))
	}
	p := parser.New(
		parser.WithScanner(scanner),
		parser.WithStripComments(s.v.GetBool(keyStripComments)),
		parser.WithReaderOptions(ropts...),
	)
	return p, done, nil
}

func (s *settings) newProfiler(w io.Writer) (reader.Profiler, func(), error) {
	opts := []tracing.Option{tracing.WithMaxDepth(s.v.GetInt(keyTraceDepth))}
	sw := tracing.NewSpanWriter(w)
	var (
		prof reader.Profiler
		done func()
	)
	switch mode := s.v.GetString(keyTrace); mode {
	case "", "none":
		return nil, func() {}, nil
	case "otel", "opentelemetry":
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(sw),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		prof = tracing.NewOpenTelemetryAnnotator(context.Background(), opts...)
		done = func() {
			_ = prof.Complete()
			_ = tp.Shutdown(context.Background())
		}
	case "opencensus":
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
		octrace.RegisterExporter(sw)
		prof = tracing.NewOpenCensusAnnotator(context.Background(), opts...)
		done = func() {
			_ = prof.Complete()
			octrace.UnregisterExporter(sw)
		}
	default:
		return nil, nil, fmt.Errorf("unknown trace mode %q (expected none, otel or opencensus)", mode)
	}
	if err := prof.Enable(); err != nil {
		done()
		return nil, nil, err
	}
	return prof, done, nil
}
