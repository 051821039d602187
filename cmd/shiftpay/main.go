package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shiftpay/internal/app/server"
	"shiftpay/internal/domain/payroll"
	"shiftpay/internal/platform/config"
	"shiftpay/internal/platform/logging"
	"shiftpay/internal/transport/http/shared"
)

// options are the flags shared by every subcommand. Empty values fall back
// to the environment.
type options struct {
	schedule       string
	scheduleFormat string
	roster         string
	lang           string
	logLevel       string
	store          string
	storePath      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "shiftpay",
		Short:         "Payroll from a restaurant shift schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.schedule, "schedule", "", "schedule file or URL (default: SCHEDULE_URL)")
	flags.StringVar(&opts.scheduleFormat, "schedule-format", "", "auto, csv, xlsx, xls or html (default: SCHEDULE_FORMAT)")
	flags.StringVar(&opts.roster, "roster", "", "roster YAML file (default: ROSTER_FILE)")
	flags.StringVar(&opts.lang, "lang", "", "report language (default: DEFAULT_LANG)")
	flags.StringVar(&opts.logLevel, "log-level", "WARN", "DEBUG, INFO, WARN or ERROR")
	flags.StringVar(&opts.store, "store", "", "adjustment store driver (default: STORE_DRIVER)")
	flags.StringVar(&opts.storePath, "store-path", "", "adjustment store path (default: STORE_PATH)")

	root.AddCommand(
		newServeCmd(opts),
		newSummaryCmd(opts),
		newAdjustCmd(opts),
		newImageCmd(opts),
		newSendCmd(opts),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// config loads the environment and applies flag overrides.
func (o *options) config() (config.Config, error) {
	cfg := config.Load()
	if o.schedule != "" {
		cfg.ScheduleURL = o.schedule
	}
	if o.scheduleFormat != "" {
		cfg.ScheduleFormat = o.scheduleFormat
	}
	if o.roster != "" {
		cfg.RosterFile = o.roster
	}
	if o.lang != "" {
		cfg.DefaultLang = o.lang
	}
	if o.store != "" {
		cfg.StoreDriver = o.store
	}
	if o.storePath != "" {
		cfg.StorePath = o.storePath
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (o *options) open(ctx context.Context) (*server.App, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return server.New(ctx, cfg)
}

func (o *options) language(app *server.App) string {
	if strings.TrimSpace(o.lang) == "" {
		return app.Translator.Default()
	}
	return app.Translator.Resolve(o.lang)
}

func closeApp(app *server.App) {
	if err := app.Close(); err != nil {
		slog.Warn("store close failed", "err", err)
	}
}

// periodFlags selects a period the same way the HTTP API does.
type periodFlags struct {
	from, to          string
	year, month, half int
}

func (p *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.from, "from", "", "period start (YYYY-MM-DD or D.M.YYYY)")
	cmd.Flags().StringVar(&p.to, "to", "", "period end, inclusive")
	cmd.Flags().IntVar(&p.year, "year", 0, "half-month year")
	cmd.Flags().IntVar(&p.month, "month", 0, "half-month month (1-12)")
	cmd.Flags().IntVar(&p.half, "half", 0, "half of the month (1 or 2)")
}

func (p *periodFlags) resolve(now time.Time) (payroll.Period, error) {
	v := shared.NewValidator()
	if p.year != 0 && (p.year < 2000 || p.year > 2100) {
		v.Add("year", "must be between 2000 and 2100")
	}
	if p.month < 0 || p.month > 12 {
		v.Add("month", "must be between 1 and 12")
	}
	if p.half < 0 || p.half > payroll.HalfSecond {
		v.Add("half", "must be 1 or 2")
	}
	if err := v.Err(); err != nil {
		return payroll.Period{}, err
	}
	req := shared.PeriodRequest{From: p.from, To: p.to, Year: p.year, Month: p.month, Half: p.half}
	period := req.Resolve(v, now)
	if err := v.Err(); err != nil {
		return payroll.Period{}, err
	}
	return period, nil
}
