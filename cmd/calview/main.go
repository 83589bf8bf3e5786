package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/calview/internal/config"
	"github.com/username/calview/internal/grid"
	"github.com/username/calview/internal/highlight"
	"github.com/username/calview/internal/locale"
	"github.com/username/calview/internal/render"
	"github.com/username/calview/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		startStr       string
		endStr         string
		firstDayStr    string
		highlightDays  []int
		highlightDates []string
		highlightFile  string
		colorMode      string
	)

	cmd := &cobra.Command{
		Use:   "calview",
		Short: "Render a text calendar for one or more months",
		Long: "Render a fixed-width text calendar for a range of consecutive months,\n" +
			"with optional highlighting of day-of-month ranges and exact dates",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			loc, err := resolveLocale(cfg)
			if err != nil {
				return err
			}

			firstDay := loc.FirstDay
			if firstDayStr != "" {
				firstDay, err = dateutil.ParseWeekday(firstDayStr)
				if err != nil {
					return err
				}
			}

			start := dateutil.Today()
			if startStr != "" {
				start, err = dateutil.ParseDate(startStr)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}

			end := start
			if endStr != "" {
				end, err = dateutil.ParseDate(endStr)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}

			dates, err := resolveHighlightDates(highlightDates, highlightFile)
			if err != nil {
				return err
			}

			mode := cfg.Output.Color
			if colorMode != "" {
				mode = colorMode
			}
			useColor, err := resolveColorMode(mode)
			if err != nil {
				return err
			}

			logger.Info("Rendering calendar",
				zap.Time("start", start),
				zap.Time("end", end),
				zap.String("first_day", firstDay.String()),
				zap.Ints("highlight_days", highlightDays),
				zap.Int("highlight_dates", len(dates)))

			blocks := grid.Build(start, end, firstDay, highlightDays, dates, loc.DayName)
			for i, block := range blocks {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Month(block, render.Options{Color: useColor}))
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")
	cmd.Flags().StringVar(&startStr, "start", "", "First month to render (default today)")
	cmd.Flags().StringVar(&endStr, "end", "", "Last month to render (default: same as --start)")
	cmd.Flags().StringVar(&firstDayStr, "first-day", "", "First day of week (default: locale)")
	cmd.Flags().IntSliceVar(&highlightDays, "highlight-day", nil, "Ascending day numbers to bracket-highlight")
	cmd.Flags().StringSliceVar(&highlightDates, "highlight-date", nil, "Dates to marker-highlight (default today)")
	cmd.Flags().StringVar(&highlightFile, "highlight-file", "", "File of dates to marker-highlight, one per line")
	cmd.Flags().StringVar(&colorMode, "color", "", "Color mode: auto, always or never (default: config)")

	return cmd
}

// resolveLocale builds the locale from config: tag, optional first-day
// override, optional day-name table
func resolveLocale(cfg *config.Config) (*locale.Locale, error) {
	loc, err := locale.New(cfg.Locale.Tag)
	if err != nil {
		return nil, err
	}

	if cfg.Locale.FirstDayOfWeek != "" {
		day, err := dateutil.ParseWeekday(cfg.Locale.FirstDayOfWeek)
		if err != nil {
			return nil, err
		}
		loc.FirstDay = day
	}

	if len(cfg.Locale.DayNames) > 0 {
		if err := loc.SetDayNames(cfg.Locale.DayNames); err != nil {
			return nil, err
		}
	}

	return loc, nil
}

// resolveHighlightDates merges the --highlight-date flags and the
// --highlight-file contents. With neither given, today is highlighted.
func resolveHighlightDates(flagDates []string, file string) (grid.DateSet, error) {
	set := grid.NewDateSet()

	for _, s := range flagDates {
		date, err := dateutil.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("--highlight-date: %w", err)
		}
		set.Add(date)
	}

	if file != "" {
		dates, err := highlight.LoadDates(file, logger)
		if err != nil {
			return nil, err
		}
		for _, date := range dates {
			set.Add(date)
		}
	}

	if len(set) == 0 {
		set.Add(dateutil.Today())
	}

	return set, nil
}

func resolveColorMode(mode string) (bool, error) {
	switch mode {
	case "always":
		color.NoColor = false
		return true, nil
	case "never":
		return false, nil
	case "auto":
		// fatih/color already detected whether stdout is a terminal
		return !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode: %q", mode)
	}
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
