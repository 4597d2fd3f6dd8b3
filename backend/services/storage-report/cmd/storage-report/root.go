package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mspbackup/backend/libs/logging"
	"mspbackup/backend/services/storage-report/internal/app"
	"mspbackup/backend/services/storage-report/internal/config"
)

const (
	configFlagName   = "config"
	customerFlagName = "customer"
	accountFlagName  = "account"
	csvFlagName      = "csv"
	noMailFlagName   = "no-mail"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "storage-report",
		Short:         "Emails a CSV of every backed-up device and the storage it lives on",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}

	cmd.Flags().String(configFlagName, "", "YAML configuration file (defaults to $CONFIG_FILE)")
	cmd.Flags().Int64(customerFlagName, 0, "Only report this customer id")
	cmd.Flags().Int64(accountFlagName, 0, "Only report this account id")
	cmd.Flags().String(csvFlagName, "", "Override the CSV output path")
	cmd.Flags().Bool(noMailFlagName, false, "Write the CSV but do not email it")

	cmd.AddCommand(newLookupCmd(), newVersionCmd())
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		cmd.PrintErrln(err)
		return err
	}

	logger, closeLog, err := logging.NewLogger(logging.Options{
		ConsoleLevel: cfg.Log.ConsoleLevel,
		FileLevel:    cfg.Log.FileLevel,
		File:         cfg.Log.File,
		Encoding:     cfg.Log.Encoding,
	})
	if err != nil {
		cmd.PrintErrln(err)
		return err
	}
	defer closeLog()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to init storage report", zap.Error(err))
		return err
	}

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("storage report interrupted")
		} else {
			logger.Error("storage report failed", zap.Error(err))
		}
		return err
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, err := flags.GetString(configFlagName)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Read(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed(customerFlagName) {
		if cfg.Report.CustomerFilter, err = flags.GetInt64(customerFlagName); err != nil {
			return nil, err
		}
	}
	if flags.Changed(accountFlagName) {
		if cfg.Report.AccountFilter, err = flags.GetInt64(accountFlagName); err != nil {
			return nil, err
		}
	}
	if flags.Changed(csvFlagName) {
		if cfg.Report.CSVFile, err = flags.GetString(csvFlagName); err != nil {
			return nil, err
		}
	}
	if noMail, _ := flags.GetBool(noMailFlagName); noMail {
		cfg.Mail.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
