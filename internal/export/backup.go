package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tradescout/tradescout/internal/core"
)

// BackupVersion is written to every backup file.
const BackupVersion = "1.0"

// Backup is the JSON backup envelope read back by the importer.
type Backup struct {
	Version    string        `json:"version"`
	ExportDate time.Time     `json:"exportDate"`
	Customers  []core.Record `json:"customers"`
}

// WriteJSON writes an indented backup of records.
func WriteJSON(w io.Writer, records []core.Record, now time.Time) error {
	if records == nil {
		records = []core.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Backup{Version: BackupVersion, ExportDate: now.UTC(), Customers: records}); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
