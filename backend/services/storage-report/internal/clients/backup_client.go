package clients

import (
	"context"

	"mspbackup/backend/services/storage-report/internal/models"
)

// Partner fields accepted by EnumeratePartners.
const (
	PartnerFieldName        = 0
	PartnerFieldLevel       = 1
	PartnerFieldServiceType = 4
	PartnerFieldState       = 5
	PartnerFieldCompanyInfo = 10
	PartnerFieldCreation    = 20
)

// AccountStatisticsQuery is the query object of EnumerateAccountStatistics.
type AccountStatisticsQuery struct {
	PartnerID         int64               `json:"PartnerId"`
	Filter            string              `json:"Filter,omitempty"`
	ExcludedPartners  []int64             `json:"ExcludedPartners,omitempty"`
	SelectionMode     string              `json:"SelectionMode,omitempty"`
	StartRecordNumber int                 `json:"StartRecordNumber"`
	RecordsCount      int                 `json:"RecordsCount"`
	OrderBy           string              `json:"OrderBy,omitempty"`
	Columns           []models.ColumnCode `json:"Columns"`
}

func (s *Session) invoke(ctx context.Context, method string, params map[string]any, out any) error {
	if err := s.Call(ctx, method, params, out); err != nil {
		return &RemoteCallError{Method: method, Params: params, Err: err}
	}
	return nil
}

// EnumeratePartners lists the sub-partners of parentPartnerID.
func (s *Session) EnumeratePartners(ctx context.Context, parentPartnerID int64, fetchRecursively bool, fields []int) ([]models.Partner, error) {
	var partners []models.Partner
	err := s.invoke(ctx, "EnumeratePartners", map[string]any{
		"parentPartnerId":  parentPartnerID,
		"fields":           fields,
		"fetchRecursively": fetchRecursively,
	}, &partners)
	return partners, err
}

// EnumerateAccounts lists the accounts of a partner.
func (s *Session) EnumerateAccounts(ctx context.Context, partnerID int64) ([]models.Account, error) {
	var accounts []models.Account
	err := s.invoke(ctx, "EnumerateAccounts", map[string]any{"partnerId": partnerID}, &accounts)
	return accounts, err
}

// EnumerateAccountStatistics runs an account statistics query. A partner
// without accounts yields an empty slice.
func (s *Session) EnumerateAccountStatistics(ctx context.Context, query AccountStatisticsQuery) ([]models.AccountStatistics, error) {
	var stats []models.AccountStatistics
	err := s.invoke(ctx, "EnumerateAccountStatistics", map[string]any{"query": query}, &stats)
	return stats, err
}

// EnumerateStorages lists storage pools visible to a partner.
func (s *Session) EnumerateStorages(ctx context.Context, partnerID int64) ([]models.Storage, error) {
	var storages []models.Storage
	err := s.invoke(ctx, "EnumerateStorages", map[string]any{"partnerId": partnerID}, &storages)
	return storages, err
}

// EnumerateStorageNodes lists the servers of a storage pool.
func (s *Session) EnumerateStorageNodes(ctx context.Context, storageID int64) ([]models.StorageNode, error) {
	var nodes []models.StorageNode
	err := s.invoke(ctx, "EnumerateStorageNodes", map[string]any{"storageId": storageID}, &nodes)
	return nodes, err
}

// GetAccountInfoByID returns account details including its storage id.
func (s *Session) GetAccountInfoByID(ctx context.Context, accountID int64) (*models.Account, error) {
	var account models.Account
	if err := s.invoke(ctx, "GetAccountInfoById", map[string]any{"accountId": accountID}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountCustomColumnValues returns custom column values of an account.
func (s *Session) GetAccountCustomColumnValues(ctx context.Context, accountID int64) ([]models.CustomColumnValue, error) {
	var values []models.CustomColumnValue
	err := s.invoke(ctx, "GetAccountCustomColumnValues", map[string]any{"accountId": accountID}, &values)
	return values, err
}

// GetPartnerInfoByID returns partner details.
func (s *Session) GetPartnerInfoByID(ctx context.Context, partnerID int64) (*models.Partner, error) {
	var partner models.Partner
	if err := s.invoke(ctx, "GetPartnerInfoById", map[string]any{"partnerId": partnerID}, &partner); err != nil {
		return nil, err
	}
	return &partner, nil
}
