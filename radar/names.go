package radar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingColumns is returned when a name-mapping import lacks the required
// "phone" and "name" columns. It is the only failure that rejects a whole
// import; malformed rows are skipped individually.
var ErrMissingColumns = errors.New(`import needs "phone" and "name" columns`)

// ImportNames loads a two-column phone→name table from CSV data. Header
// matching is case- and whitespace-insensitive; extra columns are ignored.
// Existing mappings for the same phone are replaced (last write wins).
// Returns the number of rows successfully mapped.
func ImportNames(store *Store, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read import header: %w", err)
	}
	phoneCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "phone":
			phoneCol = i
		case "name":
			nameCol = i
		}
	}
	if phoneCol < 0 || nameCol < 0 {
		return 0, ErrMissingColumns
	}

	count := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Ragged or unquotable row: skip it, keep importing.
			continue
		}
		if err != nil {
			// Anything else is a reader failure, not a bad row; a broken
			// request body keeps returning the same error forever.
			return count, fmt.Errorf("read import row: %w", err)
		}
		if phoneCol >= len(row) || nameCol >= len(row) {
			continue
		}
		phone := strings.TrimSpace(row[phoneCol])
		name := strings.TrimSpace(row[nameCol])
		if phone == "" || name == "" {
			continue
		}
		if err := store.UpsertName(phone, name); err != nil {
			return count, fmt.Errorf("upsert name for %q: %w", phone, err)
		}
		count++
	}
	namesMapped.Add(float64(count))
	return count, nil
}

// NameIndex resolves subject identifiers to display names at read time.
type NameIndex map[string]string

// Resolve returns the mapped display name, or the identifier unchanged when no
// mapping exists. Unresolved identifiers are never an error.
func (n NameIndex) Resolve(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return id
}
