// Package tokendb resolves platform symbols to Dhan security IDs from
// a scrip master CSV dump. It is the smallest useful stand-in for the
// platform's symbol database; the adapter itself only depends on the
// TokenResolver interface.
package tokendb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names in Dhan's api-scrip-master.csv.
const (
	colExchange   = "SEM_EXM_EXCH_ID"
	colSecurityID = "SEM_SMST_SECURITY_ID"
	colSymbol     = "SEM_TRADING_SYMBOL"
)

// DB is an in-memory symbol to security ID lookup. It is immutable
// after Load and safe for concurrent reads.
type DB struct {
	ids map[string]int64
}

// Load reads a scrip master CSV from path.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scrip master: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads scrip master CSV content. Rows with malformed security
// IDs are skipped.
func Parse(r io.Reader) (*DB, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read scrip master header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colExchange, colSecurityID, colSymbol} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("scrip master missing column %s", required)
		}
	}

	db := &DB{ids: make(map[string]int64)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read scrip master row: %w", err)
		}

		exchange := field(record, index[colExchange])
		symbol := field(record, index[colSymbol])
		id, convErr := strconv.ParseInt(field(record, index[colSecurityID]), 10, 64)
		if exchange == "" || symbol == "" || convErr != nil {
			continue
		}
		db.ids[key(symbol, exchange)] = id
	}
	return db, nil
}

// SecurityID implements dhan.TokenResolver.
func (db *DB) SecurityID(symbol, exchange string) (int64, bool) {
	id, ok := db.ids[key(symbol, exchange)]
	return id, ok
}

// Len reports the number of loaded instruments.
func (db *DB) Len() int {
	return len(db.ids)
}

func key(symbol, exchange string) string {
	return strings.ToUpper(exchange) + "|" + strings.ToUpper(symbol)
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
