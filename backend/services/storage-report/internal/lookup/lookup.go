// Package lookup translates numeric and string codes returned by the backup API
// into human readable labels.
package lookup

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidCode is matched by every InvalidCodeError.
var ErrInvalidCode = errors.New("invalid code")

// InvalidCodeError reports a code outside a table's domain.
type InvalidCodeError struct {
	Table string
	Code  string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Table, e.Code)
}

func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

// Table names accepted by Lookup.
const (
	TableOSType        = "os-type"
	TableStorageStatus = "storage-status"
	TableSeedingMode   = "seeding-mode"
	TableLSVStatus     = "lsv-status"
	TableBackupType    = "backup-type"
	TableBackupStatus  = "backup-status"
)

var osTypes = map[int]string{
	0: "Undefined",
	1: "Workstation",
	2: "Server",
}

// Storage and LSV share the same status scale.
var syncStatuses = map[int]string{
	-2:  "Offline",
	-1:  "Failed",
	0:   "Undefined",
	100: "Synchronized",
}

var seedingModes = map[int]string{
	0: "Undefined",
	1: "Normal",
	2: "Seeding",
	3: "Preseeding",
	4: "Postseeding",
}

var backupTypes = map[string]string{
	"D01": "Files and Folders",
	"D02": "System State",
	"D03": "MS SQL",
	"D04": "VSS Exchange",
	"D05": "Sharepoint Online",
	"D06": "Network Shares",
	"D07": "VSS System State",
	"D08": "VMware",
	"D09": "Total",
	"D10": "VSS MSSQL",
	"D11": "VSS Sharepoint",
	"D12": "Oracle",
	"D13": "Sims",
	"D14": "VSS Hyper-V",
	"D15": "MySQL",
	"D16": "Virtual Disaster Recovery",
	"D17": "Bare Metal Recovery",
	"D18": "Linux System State",
	"D19": "Exchange Online",
	"D20": "OneDrive Online",
}

var backupStatuses = map[int]string{
	0:  "Undefined",
	1:  "In Progress",
	2:  "Failed",
	3:  "Aborted",
	5:  "Completed",
	6:  "Interrupted",
	7:  "Not Started",
	8:  "Completed With Errors",
	9:  "In Progress With Errors",
	10: "Over Quota",
	11: "No Selection",
	12: "Restarted",
}

// OSType returns the label of an OS type code.
func OSType(code int) (string, error) {
	return intLabel(TableOSType, osTypes, code)
}

// StorageStatus returns the label of a storage sync status. Values strictly
// between 0 and 100 are a sync percentage.
func StorageStatus(code int) (string, error) {
	return syncLabel(TableStorageStatus, code)
}

// SeedingMode returns the label of a seeding mode code.
func SeedingMode(code int) (string, error) {
	return intLabel(TableSeedingMode, seedingModes, code)
}

// LSVStatus returns the label of a local speed vault sync status.
func LSVStatus(code int) (string, error) {
	return syncLabel(TableLSVStatus, code)
}

// BackupType returns the label of a data source code such as D01.
func BackupType(code string) (string, error) {
	if label, ok := backupTypes[code]; ok {
		return label, nil
	}
	return "", &InvalidCodeError{Table: TableBackupType, Code: code}
}

// BackupStatus returns the label of a backup session status code.
func BackupStatus(code int) (string, error) {
	return intLabel(TableBackupStatus, backupStatuses, code)
}

// Tables lists the table names accepted by Lookup.
func Tables() []string {
	names := []string{
		TableOSType, TableStorageStatus, TableSeedingMode,
		TableLSVStatus, TableBackupType, TableBackupStatus,
	}
	sort.Strings(names)
	return names
}

// Lookup resolves code in the named table.
func Lookup(table, code string) (string, error) {
	table = strings.ToLower(strings.TrimSpace(table))
	if table == TableBackupType {
		return BackupType(strings.ToUpper(strings.TrimSpace(code)))
	}

	fn, ok := map[string]func(int) (string, error){
		TableOSType:        OSType,
		TableStorageStatus: StorageStatus,
		TableSeedingMode:   SeedingMode,
		TableLSVStatus:     LSVStatus,
		TableBackupStatus:  BackupStatus,
	}[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q (want one of %s)", table, strings.Join(Tables(), ", "))
	}

	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "", &InvalidCodeError{Table: table, Code: code}
	}
	return fn(n)
}

func intLabel(table string, labels map[int]string, code int) (string, error) {
	if label, ok := labels[code]; ok {
		return label, nil
	}
	return "", &InvalidCodeError{Table: table, Code: strconv.Itoa(code)}
}

func syncLabel(table string, code int) (string, error) {
	if label, ok := syncStatuses[code]; ok {
		return label, nil
	}
	if code > 0 && code < 100 {
		return fmt.Sprintf("Synchronizing %d%%", code), nil
	}
	return "", &InvalidCodeError{Table: table, Code: strconv.Itoa(code)}
}
