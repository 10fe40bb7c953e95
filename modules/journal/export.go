package journal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// DefaultExportName returns the conventional dump basename, without
// extension.
func DefaultExportName(now time.Time) string {
	return "AIAlgo_Log_" + now.Format("20060102-150405")
}

// Save dumps the retained feed to path in the given format.
func (j *Journal) Save(path, format string) error {
	switch format {
	case "json":
		return j.SaveJSON(path)
	case "csv":
		return j.SaveCSV(path)
	default:
		return ErrUnknownFormat
	}
}

func (j *Journal) SaveJSON(path string) error {
	entries := j.Entries()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}

	return nil
}

func (j *Journal) SaveCSV(path string) error {
	entries := j.Entries()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "severity", "message"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{e.Timestamp.Format(timestampLayout), string(e.Severity), e.Message}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()

	return w.Error()
}
