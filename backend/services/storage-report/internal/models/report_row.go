package models

// ReportRow is one line of the storage report.
type ReportRow struct {
	CustomerName string
	DeviceName   string
	StorageName  string
}

// Fields returns the row in CSV column order.
func (r ReportRow) Fields() []string {
	return []string{r.CustomerName, r.DeviceName, r.StorageName}
}
