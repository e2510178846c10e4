package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workcal/internal/config"
	"github.com/username/workcal/internal/holidays"
	"github.com/username/workcal/internal/summary"
	"github.com/username/workcal/pkg/busdays"
	"github.com/username/workcal/pkg/datecalc"
	"github.com/username/workcal/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "workcal",
		Short: "Business-day calendar calculator",
		Long:  "Navigate, offset and count business days under configurable weekend and holiday calendars",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
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
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(
		checkCmd(),
		nextCmd(),
		prevCmd(),
		addCmd(),
		betweenCmd(),
		monthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [date]",
		Short: "Report whether a date is a business day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, loc, err := setupEngine()
			if err != nil {
				return err
			}

			date, err := parseDateArg(args, loc)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s: %s\n",
				date.Format("2006-01-02"), date.Weekday(), classify(eng, date))

			closest, err := eng.ClosestBusinessDay(date)
			if err != nil {
				return fmt.Errorf("no business day reachable from %s: %w",
					date.Format("2006-01-02"), err)
			}
			if !closest.Equal(date) {
				fmt.Printf("closest business day: %s %s\n",
					closest.Format("2006-01-02"), closest.Weekday())
			}
			return nil
		},
	}
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next [date]",
		Short: "Print the next business day after a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return navigate(args, busdays.Engine.NextBusinessDay)
		},
	}
}

func prevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev [date]",
		Short: "Print the previous business day before a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return navigate(args, busdays.Engine.PreviousBusinessDay)
		},
	}
}

func navigate(args []string, move func(busdays.Engine, time.Time) (time.Time, error)) error {
	eng, loc, err := setupEngine()
	if err != nil {
		return err
	}

	date, err := parseDateArg(args, loc)
	if err != nil {
		return err
	}

	result, err := move(eng, date)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", result.Format("2006-01-02"), result.Weekday())
	return nil
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <days> [date]",
		Short: "Offset a date by a signed number of business days",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid business-day count %q: %w", args[0], err)
			}

			eng, loc, err := setupEngine()
			if err != nil {
				return err
			}

			date, err := parseDateArg(args[1:], loc)
			if err != nil {
				return err
			}

			result, err := eng.AddBusinessDays(n, date)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", result.Format("2006-01-02"), result.Weekday())
			return nil
		},
	}
}

func betweenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "between <from> <to>",
		Short: "Count business days between two dates, inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, loc, err := setupEngine()
			if err != nil {
				return err
			}

			from, err := dateutil.ParseDate(args[0], loc)
			if err != nil {
				return err
			}
			to, err := dateutil.ParseDate(args[1], loc)
			if err != nil {
				return err
			}

			fmt.Println(eng.BusinessDaysBetween(from, to))
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	var listDays bool

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Summarize a month's business, weekend and holiday days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, loc, err := setupEngine()
			if err != nil {
				return err
			}

			date, err := parseDateArg(args, loc)
			if err != nil {
				return err
			}

			m, err := summary.ForMonth(eng, date.Year(), date.Month())
			if err != nil {
				return err
			}

			fmt.Printf("%s %d\n", m.Month, m.Year)
			fmt.Printf("  business days: %d\n", m.BusinessDays)
			fmt.Printf("  weekend days:  %d\n", m.WeekendDays)
			fmt.Printf("  holidays:      %d\n", m.Holidays)

			if listDays {
				fmt.Println()
				for _, day := range m.Days {
					fmt.Printf("  %s %-9s %s\n",
						day.Date.Format("2006-01-02"), day.Weekday, day.Kind)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listDays, "days", false, "List every day of the month")

	return cmd
}

func classify(eng busdays.Engine, date time.Time) string {
	switch {
	case eng.IsWeekend(date):
		return "weekend"
	case eng.IsHoliday(date):
		return "holiday"
	default:
		return "business day"
	}
}

func parseDateArg(args []string, loc *time.Location) (time.Time, error) {
	if len(args) == 0 {
		return dateutil.Today(loc), nil
	}
	return dateutil.ParseDate(args[0], loc)
}

// setupEngine assembles the engine from configuration: calendar location,
// weekend set, safety bound and holiday sources. Holidays are loaded for the
// current year and its neighbors so navigation across year boundaries sees
// them.
func setupEngine() (busdays.Engine, *time.Location, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return busdays.Engine{}, nil, err
	}

	loc, err := cfg.Calendar.Location()
	if err != nil {
		return busdays.Engine{}, nil, err
	}

	eng := busdays.New(datecalc.NewCalculator(loc))

	weekend, err := cfg.Calendar.WeekendSet()
	if err != nil {
		return busdays.Engine{}, nil, err
	}
	if weekend != nil {
		eng, err = eng.WithWeekendDays(weekend...)
		if err != nil {
			return busdays.Engine{}, nil, err
		}
	}

	if cfg.Engine.MaxSkippedDays > 0 {
		eng, err = eng.WithMaxSkippedDays(cfg.Engine.MaxSkippedDays)
		if err != nil {
			return busdays.Engine{}, nil, err
		}
	}

	source, err := holidaySource(cfg, loc)
	if err != nil {
		return busdays.Engine{}, nil, err
	}
	if source != nil {
		thisYear := dateutil.Today(loc).Year()
		for year := thisYear - 1; year <= thisYear+1; year++ {
			dates, err := source.Holidays(year)
			if err != nil {
				return busdays.Engine{}, nil, fmt.Errorf("failed to load holidays for %d: %w", year, err)
			}
			eng = eng.AddingHolidays(dates...)
		}
	}

	return eng, loc, nil
}

func holidaySource(cfg *config.Config, loc *time.Location) (holidays.Source, error) {
	var file *holidays.FileSource
	if cfg.Calendar.HolidayFile != "" {
		file = holidays.NewFileSource(cfg.Calendar.HolidayFile, loc, logger)
		if err := file.Load(); err != nil {
			return nil, err
		}
	}

	var remote *holidays.HTTPSource
	if cfg.Calendar.HolidayURL != "" {
		remote = holidays.NewHTTPSource(cfg.Calendar.HolidayURL, loc,
			cfg.Calendar.GetCacheTTL(), logger)
	}

	switch {
	case remote != nil && file != nil:
		return holidays.NewComposite(remote, file, logger), nil
	case remote != nil:
		return remote, nil
	case file != nil:
		return file, nil
	default:
		return nil, nil
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

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
