package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mspbackup/backend/services/storage-report/internal/clients"
	"mspbackup/backend/services/storage-report/internal/config"
	"mspbackup/backend/services/storage-report/internal/csvreport"
	"mspbackup/backend/services/storage-report/internal/mailer"
	"mspbackup/backend/services/storage-report/internal/metrics"
	"mspbackup/backend/services/storage-report/internal/service"
)

// App wires storage report dependencies.
type App struct {
	cfg       *config.Config
	transport *clients.Transport
	mailer    *mailer.Mailer
	recorder  *metrics.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	recorder := metrics.NewRecorder()

	httpClient, err := clients.NewHTTPClient(cfg.TransportOptions())
	if err != nil {
		return nil, err
	}
	httpClient.Transport = recorder.InstrumentRoundTripper(httpClient.Transport)

	a := &App{
		cfg:       cfg,
		transport: clients.NewTransport(cfg.API.URL, httpClient, cfg.API.Headers),
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}

	if cfg.Mail.Enabled {
		opts := mailer.Options{
			Server:  cfg.Mail.Server,
			Port:    cfg.Mail.Port,
			From:    cfg.Mail.User,
			To:      cfg.Mail.Destination,
			TLS:     cfg.Mail.TLS,
			Timeout: cfg.APITimeout(),
		}
		sender, err := mailer.NewSMTPSender(opts)
		if err != nil {
			return nil, err
		}
		a.mailer = mailer.New(sender, opts, logger)
	}

	return a, nil
}

// Run logs in, builds the report, writes the CSV and mails it.
func (a *App) Run(ctx context.Context) error {
	start := a.now()
	runID := uuid.NewString()
	logger := a.logger.With(zap.String("run_id", runID))
	logger.Info("script start", zap.Time("start", start))

	logger.Debug("authenticating", zap.String("endpoint", a.transport.Endpoint()), zap.String("partner", a.cfg.API.PartnerName))
	session, err := clients.Connect(ctx, a.transport, a.cfg.API.PartnerName, a.cfg.API.Username, a.cfg.API.Password, logger)
	if err != nil {
		return err
	}
	logger.Debug("auth ok", zap.Int64("partner_id", session.PartnerID()))

	report, err := service.NewReportService(session, a.cfg.ReportOptions(), logger).Build(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if err := csvreport.WriteFile(a.cfg.Report.CSVFile, report.Rows); err != nil {
		return err
	}
	logger.Info("report written",
		zap.String("file", a.cfg.Report.CSVFile),
		zap.Int("rows", len(report.Rows)),
		zap.Int("customers_skipped", report.Summary.PartnersSkipped),
		zap.Int("unresolved", report.Summary.Unresolved),
	)

	if a.mailer != nil {
		if err := a.mailer.SendReport(ctx, session.PartnerName(), a.cfg.Report.CSVFile, runID); err != nil {
			return err
		}
		logger.Info("email sent", zap.String("to", a.cfg.Mail.Destination))
	} else {
		logger.Info("mail disabled, skipping email")
	}

	end := a.now()
	a.recorder.ObserveRun(metrics.Run{
		Rows:             len(report.Rows),
		Customers:        report.Summary.Partners,
		CustomersSkipped: report.Summary.PartnersSkipped,
		Unresolved:       report.Summary.Unresolved,
		Duration:         end.Sub(start),
	})
	if url := a.cfg.Metrics.PushgatewayURL; url != "" {
		if err := a.recorder.Push(ctx, url, a.cfg.Metrics.Job, a.cfg.API.PartnerName); err != nil {
			logger.Warn("failed to push metrics", zap.Error(err))
		}
	}

	logger.Info("script end", zap.Time("start", start), zap.Time("end", end), zap.Duration("elapsed", end.Sub(start)))
	return nil
}
