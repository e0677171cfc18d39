package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/db"
	"github.com/md-rashed-zaman/mockinterview/libs/grpcx"
	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/app"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/availability"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/storage"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "interviewctl",
		Short:         "Maintenance commands for the interview service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(), newSlotsCmd(), newScanCmd(), newHealthCmd())
	return root
}

// withCore opens the database and builds the domain stack for one command.
func withCore(ctx context.Context, fn func(*app.Core, *db.Pool, *slog.Logger) error) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := runtime.NewLogger("interviewctl")
	pool, err := db.Open(ctx, cfg.DatabaseURL, db.Options{MaxConns: 2})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	return fn(app.NewCore(pool, cfg, runtime.SystemClock(), logger), pool, logger)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCore(cmd.Context(), func(_ *app.Core, pool *db.Pool, logger *slog.Logger) error {
				if err := storage.Migrate(cmd.Context(), pool); err != nil {
					return err
				}
				logger.Info("schema applied")
				return nil
			})
		},
	}
}

func newSlotsCmd() *cobra.Command {
	var interviewer, date, tz string
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the bookable slots of an interviewer for one day",
		Example: `  interviewctl slots --interviewer iv-1 --date 2026-03-02
  interviewctl slots --interviewer iv-1 --date 2026-03-02 --timezone Europe/Berlin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCore(cmd.Context(), func(core *app.Core, _ *db.Pool, _ *slog.Logger) error {
				res, err := core.Resolver.ResolveSlots(cmd.Context(), availability.Request{
					InterviewerID: interviewer,
					Date:          date,
					Timezone:      tz,
				})
				if err != nil {
					return err
				}
				return printSlots(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&interviewer, "interviewer", "", "interviewer id")
	cmd.Flags().StringVar(&date, "date", "", "day in the interviewer's timezone (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tz, "timezone", "", "display timezone (IANA name)")
	_ = cmd.MarkFlagRequired("interviewer")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func printSlots(w io.Writer, res availability.Result) error {
	if len(res.Slots) == 0 {
		_, err := fmt.Fprintln(w, "no slots available")
		return err
	}
	display := res.Display
	if display == nil {
		display = time.UTC
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "START\tEND\tMINUTES\tLOCAL (%s)\n", display)
	for _, s := range res.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			s.Start.Format(time.RFC3339),
			s.End.Format(time.RFC3339),
			s.Duration,
			s.Start.In(display).Format("Mon 15:04"),
		)
	}
	return tw.Flush()
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan-reminders",
		Short: "Run one reminder sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCore(cmd.Context(), func(core *app.Core, _ *db.Pool, _ *slog.Logger) error {
				res, err := core.Scanner.ScanOnce(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "examined=%d one_hour=%d five_minute=%d already_sent=%d failed=%d\n",
					res.Examined, res.OneHour, res.FiveMinute, res.AlreadySent, res.Failed)
				return err
			})
		},
	}
}

func newHealthCmd() *cobra.Command {
	var addr, service string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Query the gRPC health endpoint of a running service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := grpcx.Dial(addr, grpcx.DialOptions{})
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			status, err := grpcx.CheckHealth(ctx, conn, service)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			if status != "SERVING" {
				return fmt.Errorf("service %q is %s", service, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:9090", "gRPC address")
	cmd.Flags().StringVar(&service, "service", "interview-service", "health service name")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "request timeout")
	return cmd
}
