package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mspbackup/backend/services/storage-report/internal/clients"
	"mspbackup/backend/services/storage-report/internal/models"
)

// Defaults for the account statistics and partner queries.
const (
	DefaultRecordsCount = 100
)

// DefaultPartnerFields requests partner name and company info.
var DefaultPartnerFields = []int{clients.PartnerFieldName, clients.PartnerFieldCompanyInfo}

// BackupAPI is the subset of the session client used to build the report.
//
//go:generate go run github.com/golang/mock/mockgen -destination ../mocks/backup_api_mock.go -package mocks mspbackup/backend/services/storage-report/internal/service BackupAPI
type BackupAPI interface {
	PartnerID() int64
	EnumeratePartners(ctx context.Context, parentPartnerID int64, fetchRecursively bool, fields []int) ([]models.Partner, error)
	EnumerateStorages(ctx context.Context, partnerID int64) ([]models.Storage, error)
	EnumerateAccountStatistics(ctx context.Context, query clients.AccountStatisticsQuery) ([]models.AccountStatistics, error)
	GetAccountInfoByID(ctx context.Context, accountID int64) (*models.Account, error)
}

// ReportOptions narrows and shapes the report queries. Zero filters disable
// filtering.
type ReportOptions struct {
	CustomerFilter   int64
	AccountFilter    int64
	RecordsCount     int
	PartnerFields    []int
	FetchRecursively bool
}

// Summary counts what the builder saw.
type Summary struct {
	Partners         int
	PartnersFiltered int
	PartnersSkipped  int
	Accounts         int
	AccountsFiltered int
	Unresolved       int
}

// Report is the built row list and its summary.
type Report struct {
	Rows    []models.ReportRow
	Summary Summary
}

// ReportService joins customers, accounts and storages into report rows.
type ReportService struct {
	api    BackupAPI
	opts   ReportOptions
	logger *zap.Logger
}

// NewReportService builds service.
func NewReportService(api BackupAPI, opts ReportOptions, logger *zap.Logger) *ReportService {
	if opts.RecordsCount <= 0 {
		opts.RecordsCount = DefaultRecordsCount
	}
	if len(opts.PartnerFields) == 0 {
		opts.PartnerFields = DefaultPartnerFields
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{api: api, opts: opts, logger: logger}
}

// Build walks every customer of the logged in partner. Customers without
// accounts and accounts whose storage is unknown are logged and tolerated;
// any other failure aborts the build.
func (s *ReportService) Build(ctx context.Context) (*Report, error) {
	rootID := s.api.PartnerID()

	s.logger.Debug("building list of customers", zap.Int64("partner_id", rootID))
	customers, err := s.api.EnumeratePartners(ctx, rootID, s.opts.FetchRecursively, s.opts.PartnerFields)
	if err != nil {
		return nil, fmt.Errorf("enumerate customers: %w", err)
	}

	storages, err := s.api.EnumerateStorages(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("enumerate storages: %w", err)
	}

	report := &Report{}
	for _, customer := range customers {
		report.Summary.Partners++
		log := s.logger.With(zap.Int64("customer_id", customer.ID), zap.String("customer", customer.Name))

		if s.opts.CustomerFilter != 0 && customer.ID != s.opts.CustomerFilter {
			log.Debug("customer rejected by filter")
			report.Summary.PartnersFiltered++
			continue
		}

		accounts, err := s.api.EnumerateAccountStatistics(ctx, clients.AccountStatisticsQuery{
			PartnerID:         customer.ID,
			StartRecordNumber: 0,
			RecordsCount:      s.opts.RecordsCount,
			Columns:           []models.ColumnCode{models.ColumnDeviceName},
		})
		if err != nil {
			return nil, fmt.Errorf("enumerate accounts of customer %d: %w", customer.ID, err)
		}
		if len(accounts) == 0 {
			log.Warn("no accounts found in customer")
			report.Summary.PartnersSkipped++
			continue
		}

		for _, account := range accounts {
			alog := log.With(zap.Int64("account_id", account.AccountID), zap.String("device", account.DeviceName()))

			if s.opts.AccountFilter != 0 && account.AccountID != s.opts.AccountFilter {
				alog.Debug("account rejected by filter")
				report.Summary.AccountsFiltered++
				continue
			}

			info, err := s.api.GetAccountInfoByID(ctx, account.AccountID)
			if err != nil {
				return nil, fmt.Errorf("account info of %d: %w", account.AccountID, err)
			}

			storageName, ok := storageNameByID(storages, info.StorageID)
			if !ok {
				alog.Warn("storage not found", zap.Int64("storage_id", info.StorageID))
				report.Summary.Unresolved++
			} else {
				alog.Debug("storage resolved", zap.String("storage", storageName))
			}

			report.Summary.Accounts++
			report.Rows = append(report.Rows, models.ReportRow{
				CustomerName: customer.Name,
				DeviceName:   account.DeviceName(),
				StorageName:  storageName,
			})
		}
	}

	return report, nil
}

func storageNameByID(storages []models.Storage, id int64) (string, bool) {
	for _, st := range storages {
		if st.ID == id {
			return st.Name, true
		}
	}
	return "", false
}
