package render

import (
	"database/sql"
	"fmt"
	"io"
)

// Result is a fully materialized query result.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// RowCount returns the number of rows.
func (r *Result) RowCount() int {
	return len(r.Rows)
}

// Collect reads every row. []byte values become strings.
func Collect(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		for i, v := range values {
			// Convert []byte to string for readability
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return res, nil
}

// Results writes r in format f. Tables end with a "(N rows)" footer; a
// statement without result columns prints "OK".
func Results(w io.Writer, r *Result, f Format) error {
	if f == FormatJSON {
		return writeJSON(w, r)
	}
	if len(r.Columns) == 0 {
		_, err := fmt.Fprintln(w, "OK")
		return err
	}
	if f == FormatTable && r.RowCount() == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = formatValue(v)
		}
	}
	if err := grid(w, f, r.Columns, rows); err != nil {
		return err
	}

	if f == FormatTable {
		_, err := fmt.Fprintf(w, "(%d rows)\n", r.RowCount())
		return err
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
