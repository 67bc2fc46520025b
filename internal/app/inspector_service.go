package app

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// InspectorService produces the admin view of the whole store. Tables come
// from the schema catalog via the Migrator, never from interpolated SQL, and
// the route serving this is gated on an admin session.
type InspectorService struct {
	db *gorm.DB
}

type TableDump struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func NewInspectorService(db *gorm.DB) *InspectorService {
	return &InspectorService{db: db}
}

// DumpTables reads every table in the schema, column order preserved,
// tables sorted by name.
func (s *InspectorService) DumpTables(ctx context.Context) ([]TableDump, error) {
	tables, err := s.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables failed: %w", err)
	}
	sort.Strings(tables)

	dumps := make([]TableDump, 0, len(tables))
	for _, table := range tables {
		dump, err := s.dumpTable(ctx, table)
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, dump)
	}
	return dumps, nil
}

func (s *InspectorService) dumpTable(ctx context.Context, table string) (TableDump, error) {
	rows, err := s.db.WithContext(ctx).Table(table).Rows()
	if err != nil {
		return TableDump{}, fmt.Errorf("read table %s failed: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return TableDump{}, fmt.Errorf("read columns of %s failed: %w", table, err)
	}

	dump := TableDump{Name: table, Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return TableDump{}, fmt.Errorf("scan row of %s failed: %w", table, err)
		}
		for i, v := range values {
			// Drivers hand text columns back as []byte, which would
			// JSON-encode as base64.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		dump.Rows = append(dump.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return TableDump{}, fmt.Errorf("iterate rows of %s failed: %w", table, err)
	}
	return dump, nil
}
