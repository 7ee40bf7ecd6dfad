package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const msgNotObject = "not a customer object"

// backupFile is the envelope written by the JSON export.
type backupFile struct {
	Version    string            `json:"version"`
	ExportDate string            `json:"exportDate"`
	Customers  []json.RawMessage `json:"customers"`
}

// parseJSON accepts the backup envelope or a bare array of customers.
func parseJSON(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("invalid backup: %w", err)
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return Result{}, ErrEmptyFile
	}

	var customers []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &customers); err != nil {
			return Result{}, fmt.Errorf("invalid backup: %w", err)
		}
	case '{':
		var b backupFile
		if err := json.Unmarshal(data, &b); err != nil {
			return Result{}, fmt.Errorf("invalid backup: %w", err)
		}
		if b.Customers == nil {
			return Result{}, errors.New("invalid backup: missing customers array")
		}
		customers = b.Customers
	default:
		return Result{}, errors.New("invalid backup: expected a JSON object or array")
	}

	rows := make([]row, len(customers))
	for i, raw := range customers {
		rows[i] = row{number: i + 1}
		var c map[string]any
		if err := json.Unmarshal(raw, &c); err != nil || c == nil {
			rows[i].problem = msgNotObject
			continue
		}
		values := make(map[string]string, len(aliases))
		for field, names := range aliases {
			values[field] = firstValue(c, append([]string{field}, names...))
		}
		rows[i].values = values
	}
	return collect(rows)
}

func firstValue(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return stringify(v)
		}
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
