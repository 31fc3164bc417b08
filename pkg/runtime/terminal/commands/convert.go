package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajb0730/pc2xl/pkg/export"
	"github.com/ajb0730/pc2xl/pkg/services/config"
	"github.com/ajb0730/pc2xl/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ConvertCmd struct {
	settingsPath string
	profilePath  string
	profile      string
	prefix       string
	separator    string
	toStdout     bool
	verbosity    int
	out          io.Writer
}

func NewConvertCmd(out io.Writer) *cobra.Command {
	cc := &ConvertCmd{out: out}
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert report files to delimited text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.settingsPath, "settings", "", "Path to an optional settings file")
	cmd.Flags().StringVar(&cc.profilePath, "profiles", "", "Path to an INI file of output presets")
	cmd.Flags().StringVar(&cc.profile, "profile", "", "Named preset from the profiles file")
	cmd.Flags().StringVarP(&cc.prefix, "prefix", "p", "", `Column-name prefix (default "s###_")`)
	cmd.Flags().StringVarP(&cc.separator, "separator", "s", "", `Field separator (default ";")`)
	cmd.Flags().BoolVar(&cc.toStdout, "stdout", false, "Write converted output to stdout instead of files")
	cmd.Flags().CountVarP(&cc.verbosity, "verbose", "v", "Increase diagnostic output")

	return cmd
}

func (cc *ConvertCmd) run(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(cc.settingsPath)
	if err != nil {
		return err
	}

	// The settings file supplies the default verbosity; an explicit -v wins.
	verbosity := settings.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = cc.verbosity
	}

	logger := zerolog.New(cmd.ErrOrStderr()).
		With().Timestamp().Logger().
		Level(verbosityLevel(verbosity))
	ctx := logger.WithContext(cmd.Context())

	opts, err := cc.resolveOptions(ctx, settings)
	if err != nil {
		return err
	}

	// Files are independent; one bad file does not stop the rest.
	failed := 0
	for _, path := range args {
		if err := cc.convertFile(ctx, path, opts); err != nil {
			logger.Error().Err(err).Str("file", path).Msg("conversion failed")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
	}
	return nil
}

func verbosityLevel(v int) zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.WarnLevel
	case v == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// resolveOptions layers the output options: explicit flag over profile over
// settings file over built-in default.
func (cc *ConvertCmd) resolveOptions(ctx context.Context, settings *config.Settings) (export.Options, error) {
	opts := export.Options{Prefix: settings.Prefix, Separator: settings.Separator}

	if cc.profile != "" {
		if cc.profilePath == "" {
			return export.Options{}, errors.New("--profile requires --profiles")
		}
		registry, err := config.NewRegistry(cc.profilePath)
		if err != nil {
			return export.Options{}, fmt.Errorf("failed to load profiles: %w", err)
		}
		p, err := registry.GetProfile(ctx, cc.profile)
		if err != nil {
			return export.Options{}, err
		}
		if p.Prefix != "" {
			opts.Prefix = p.Prefix
		}
		if p.Separator != "" {
			opts.Separator = p.Separator
		}
	}

	if cc.prefix != "" {
		opts.Prefix = cc.prefix
	}
	if cc.separator != "" {
		opts.Separator = cc.separator
	}
	return opts, nil
}

func (cc *ConvertCmd) convertFile(ctx context.Context, path string, opts export.Options) error {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Parse fully before touching the output path, so a rejected report
	// never leaves a partial file behind.
	doc, err := report.Assemble(ctx, report.NewLineBuffer(string(data)))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cc.toStdout {
		return export.NewReporter(cc.out, opts).Handle(doc)
	}

	outPath, err := nextFreePath(csvPath(path))
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := export.NewReporter(f, opts).Handle(doc); err != nil {
		return err
	}

	logger.Info().
		Str("input", path).
		Str("output", outPath).
		Int("records", len(doc.Records)).
		Msg("converted")
	return nil
}

// csvPath swaps the input extension for .csv.
func csvPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
}

// nextFreePath returns path unchanged if nothing occupies it, otherwise the
// first "-N" variant that does not exist yet. Existing files are never
// overwritten.
func nextFreePath(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path, nil
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free output name for %s", path)
}
