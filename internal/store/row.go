package store

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Row is one result row keyed by column name
type Row map[string]any

// Int64 returns an integer column, accepting any integer width the driver
// produced.
func (r Row) Int64(column string) (int64, error) {
	switch v := r[column].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int:
		return int64(v), nil
	case nil:
		return 0, fmt.Errorf("column %q is null or missing", column)
	default:
		return 0, fmt.Errorf("column %q has type %T, want integer", column, v)
	}
}

// DecodeRow copies the columns of row into the struct pointed to by out,
// matching `db` struct tags.
func DecodeRow(row Row, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "db",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("build row decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(row)); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

// DecodeRows decodes every row into a new T
func DecodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := DecodeRow(row, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
