package lookup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntTables(t *testing.T) {
	cases := []struct {
		name  string
		fn    func(int) (string, error)
		valid map[int]string
		bad   []int
	}{
		{"os type", OSType, map[int]string{0: "Undefined", 1: "Workstation", 2: "Server"}, []int{-1, 3}},
		{"seeding mode", SeedingMode, map[int]string{0: "Undefined", 2: "Seeding", 4: "Postseeding"}, []int{-1, 5}},
		{"backup status", BackupStatus, map[int]string{0: "Undefined", 5: "Completed", 8: "Completed With Errors", 12: "Restarted"}, []int{4, 13, -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for code, want := range tc.valid {
				got, err := tc.fn(code)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			for _, code := range tc.bad {
				_, err := tc.fn(code)
				assert.ErrorIs(t, err, ErrInvalidCode, "code %d", code)
			}
		})
	}
}

func TestSyncStatusTables(t *testing.T) {
	for name, fn := range map[string]func(int) (string, error){"storage": StorageStatus, "lsv": LSVStatus} {
		t.Run(name, func(t *testing.T) {
			for code, want := range map[int]string{-2: "Offline", -1: "Failed", 0: "Undefined", 100: "Synchronized"} {
				got, err := fn(code)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			for code := 1; code < 100; code++ {
				got, err := fn(code)
				require.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("Synchronizing %d%%", code), got)
			}
			for _, code := range []int{-3, 101, 250} {
				_, err := fn(code)
				assert.ErrorIs(t, err, ErrInvalidCode, "code %d", code)
			}
		})
	}
}

func TestBackupType(t *testing.T) {
	got, err := BackupType("D01")
	require.NoError(t, err)
	assert.Equal(t, "Files and Folders", got)

	got, err = BackupType("D20")
	require.NoError(t, err)
	assert.Equal(t, "OneDrive Online", got)

	_, err = BackupType("D21")
	var invalid *InvalidCodeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, TableBackupType, invalid.Table)
	assert.Equal(t, "D21", invalid.Code)
}

func TestLookupDispatch(t *testing.T) {
	got, err := Lookup("backup-status", "5")
	require.NoError(t, err)
	assert.Equal(t, "Completed", got)

	got, err = Lookup(" Storage-Status ", "42")
	require.NoError(t, err)
	assert.Equal(t, "Synchronizing 42%", got)

	got, err = Lookup("backup-type", "d08")
	require.NoError(t, err)
	assert.Equal(t, "VMware", got)

	_, err = Lookup("os-type", "server")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = Lookup("colour", "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCode)
	assert.Contains(t, err.Error(), TableBackupStatus)
}
