package models

// Account is a backed-up device as returned by GetAccountInfoById.
type Account struct {
	ID        int64  `json:"Id"`
	Name      string `json:"Name"`
	PartnerID int64  `json:"PartnerId"`
	StorageID int64  `json:"StorageId"`
}

// AccountStatistics is one row of EnumerateAccountStatistics.
type AccountStatistics struct {
	AccountID int64   `json:"AccountId"`
	PartnerID int64   `json:"PartnerId"`
	Columns   Columns `json:"Settings"`
}

// DeviceName returns the I1 column.
func (a AccountStatistics) DeviceName() string {
	return a.Columns[ColumnDeviceName]
}

// CustomColumnValue is a single value from GetAccountCustomColumnValues.
type CustomColumnValue struct {
	ColumnID int64  `json:"ColumnId"`
	Value    string `json:"Value"`
}
