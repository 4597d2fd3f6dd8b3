// Package csvreport writes report rows as CSV with every field quoted.
package csvreport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"mspbackup/backend/services/storage-report/internal/models"
)

const lineTerminator = "\r\n"

// Write serialises rows to w. There is no header row.
func Write(w io.Writer, rows []models.ReportRow) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, field := range row.Fields() {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(field)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(lineTerminator); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes rows to it.
func WriteFile(path string, rows []models.ReportRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvreport: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csvreport: close %s: %w", path, cerr)
		}
	}()

	if err := Write(f, rows); err != nil {
		return fmt.Errorf("csvreport: write %s: %w", path, err)
	}
	return nil
}

// Read parses rows previously produced by Write.
func Read(r io.Reader) ([]models.ReportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	var rows []models.ReportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csvreport: %w", err)
		}
		rows = append(rows, models.ReportRow{
			CustomerName: record[0],
			DeviceName:   record[1],
			StorageName:  record[2],
		})
	}
}

// ReadFile reads rows from path.
func ReadFile(path string) ([]models.ReportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvreport: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
