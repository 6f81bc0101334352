package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/iwvelando/grain-loss/internal/calculator"
	"github.com/iwvelando/grain-loss/internal/config"
	"github.com/iwvelando/grain-loss/internal/form"
	"github.com/iwvelando/grain-loss/internal/report"
	"github.com/iwvelando/grain-loss/internal/server"
	"github.com/iwvelando/grain-loss/pkg/constants"
	"github.com/iwvelando/grain-loss/pkg/output"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func headerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "unit", Usage: "reporting unit"},
		&cli.StringFlag{Name: "report-date", Usage: "report date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "location", Usage: "storage location number"},
		&cli.StringFlag{Name: "in-warehouse", Usage: "inbound warehouse type"},
		&cli.StringFlag{Name: "out-warehouse", Usage: "outbound warehouse type"},
	}
}

func headerFrom(c *cli.Context) report.Header {
	return report.Header{
		UnitTitle:        c.String("unit"),
		ReportDate:       c.String("report-date"),
		LocationNumber:   c.String("location"),
		InWarehouseType:  c.String("in-warehouse"),
		OutWarehouseType: c.String("out-warehouse"),
	}
}

func stringFlags(names ...string) []cli.Flag {
	flags := make([]cli.Flag, len(names))
	for i, name := range names {
		flags[i] = &cli.StringFlag{Name: name}
	}
	return flags
}

func lossCommand(e *env) *cli.Command {
	flags := stringFlags("commodity", "in-date", "out-date", "in-moisture", "out-moisture",
		"in-impurity", "out-impurity", "in-quantity", "out-quantity", "region")
	return &cli.Command{
		Name:  "loss",
		Usage: "Compute a storage loss report",
		Flags: append(flags, headerFlags()...),
		Action: func(c *cli.Context) error {
			const op = "main.loss"

			f := form.LossForm{
				Commodity:   c.String("commodity"),
				InDate:      c.String("in-date"),
				OutDate:     c.String("out-date"),
				InMoisture:  c.String("in-moisture"),
				OutMoisture: c.String("out-moisture"),
				InImpurity:  c.String("in-impurity"),
				OutImpurity: c.String("out-impurity"),
				InQuantity:  c.String("in-quantity"),
				OutQuantity: c.String("out-quantity"),
			}

			table, err := e.conf.RateTable(c.String("region"))
			if err != nil {
				return err
			}
			in, notices, err := f.Parse(e.conf.FormThresholds())
			if err != nil {
				return err
			}
			result, err := calculator.ComputeLoss(in, table, calculator.WithLossRounding(e.conf.LossRounding()))
			if err != nil {
				return err
			}
			if result.UnknownCommodity {
				e.logger.Warn("commodity has no rate table entry, natural loss rate is zero",
					zap.String("op", op),
					zap.String("commodity", in.Commodity),
				)
			}

			return e.emit(c, report.NewLossReport(headerFrom(c), f, &result, notices), op)
		},
	}
}

func surplusCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "surplus",
		Usage: "Compute an outbound surplus/shortage report",
		Flags: append(stringFlags("in-date", "out-date", "storage-quantity", "out-quantity"), headerFlags()...),
		Action: func(c *cli.Context) error {
			f := form.SurplusForm{
				InDate:          c.String("in-date"),
				OutDate:         c.String("out-date"),
				StorageQuantity: c.String("storage-quantity"),
				OutQuantity:     c.String("out-quantity"),
			}
			in, err := f.Parse()
			if err != nil {
				return err
			}
			result, err := calculator.ComputeSurplus(in, calculator.WithSurplusRounding(e.conf.SurplusRounding()))
			if err != nil {
				return err
			}
			return e.emit(c, report.NewSurplusReport(headerFrom(c), f, &result), "main.surplus")
		},
	}
}

func processingCommand(e *env) *cli.Command {
	flags := stringFlags("before-date", "after-date", "before-quantity", "after-quantity",
		"before-moisture", "after-moisture", "before-impurity", "after-impurity")
	return &cli.Command{
		Name:  "processing",
		Usage: "Compute a purchase/processing loss report",
		Flags: append(flags, headerFlags()...),
		Action: func(c *cli.Context) error {
			f := form.ProcessingForm{
				BeforeDate:     c.String("before-date"),
				AfterDate:      c.String("after-date"),
				BeforeQuantity: c.String("before-quantity"),
				AfterQuantity:  c.String("after-quantity"),
				BeforeMoisture: c.String("before-moisture"),
				AfterMoisture:  c.String("after-moisture"),
				BeforeImpurity: c.String("before-impurity"),
				AfterImpurity:  c.String("after-impurity"),
			}
			in, err := f.Parse()
			if err != nil {
				return err
			}
			result, err := calculator.ComputeProcessingLoss(in)
			if err != nil {
				return err
			}
			return e.emit(c, report.NewProcessingReport(headerFrom(c), f, &result), "main.processing")
		},
	}
}

func commoditiesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "commodities",
		Usage: "List the commodities and loss rate tiers of a region",
		Flags: stringFlags("region"),
		Action: func(c *cli.Context) error {
			table, err := e.conf.RateTable(c.String("region"))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "commodity\tup to months\trate")
			for _, name := range table.Commodities() {
				for _, tier := range table[name] {
					upTo := "*"
					if !tier.IsUnbounded() {
						upTo = fmt.Sprintf("%d", *tier.MaxMonths)
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%g\n", name, upTo, tier.Rate)
				}
			}
			return tw.Flush()
		},
	}
}

func serveCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the report API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server-config",
				Usage: "path to server configuration file",
				Value: constants.DefaultServerConfigFile,
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address override",
			},
		},
		Action: func(c *cli.Context) error {
			const op = "main.serve"

			serverConf, err := server.LoadConfig(c.String("server-config"))
			if err != nil {
				return err
			}
			if addr := c.String("address"); addr != "" {
				serverConf.Address = addr
			}

			logger := e.logger
			if serverConf.Logging != (config.LoggingConfig{}) {
				if logger, err = initializeLogger(serverConf.Logging, c.String("log-level")); err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() { _ = logger.Sync() }()
			}

			srv := &http.Server{
				Addr:              serverConf.Address,
				Handler:           server.NewHandler(logger, e.conf, serverConf.BodySizeBytes(), version),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("op", op),
					zap.String("address", serverConf.Address),
					zap.Int64("maxBodySize", serverConf.BodySizeBytes()),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("shutting down", zap.String("op", op))
			return srv.Shutdown(shutdownCtx)
		},
	}
}

// emit writes rep in the selected output format and logs whether it is
// ready for export.
func (e *env) emit(c *cli.Context, rep *report.Report, op string) error {
	if err := output.Write(c.App.Writer, e.outputFormat, rep); err != nil {
		return err
	}

	if missing := rep.MissingFields(); len(missing) > 0 {
		e.logger.Info("report incomplete, export unavailable",
			zap.String("op", op),
			zap.String("reportId", rep.ID),
			zap.Strings("missing", missing),
		)
		return nil
	}
	e.logger.Info("report ready for export",
		zap.String("op", op),
		zap.String("reportId", rep.ID),
		zap.String("fileName", rep.FileName(time.Now())),
	)
	return nil
}
