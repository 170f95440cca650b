package store

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/parquet-go/parquet-go"

	"github.com/tjk113/coil/internal/field"
)

// ExportParquet writes the table's rows to a parquet file. Number columns
// become INT64 when every stored value is an integer and DOUBLE otherwise;
// Text columns become strings. None values are written as nulls.
func ExportParquet(t *Table, path string) error {
	doubles := make(map[string]bool, len(t.Columns))
	group := parquet.Group{}
	for _, c := range t.Columns {
		switch c.Type {
		case field.TypeNumber:
			for _, v := range c.Values {
				if v.Kind() == field.KindFloat {
					doubles[c.Name] = true
					break
				}
			}
			if doubles[c.Name] {
				group[c.Name] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
			} else {
				group[c.Name] = parquet.Optional(parquet.Int(64))
			}
		default:
			group[c.Name] = parquet.Optional(parquet.String())
		}
	}
	schema := parquet.NewSchema(t.Name, group)

	records := make([]map[string]interface{}, t.Len())
	for i := range records {
		record := make(map[string]interface{}, len(t.Columns))
		for _, c := range t.Columns {
			v := c.Values[i]
			switch v.Kind() {
			case field.KindNone:
				// missing key encodes as null
			case field.KindInteger:
				n, _ := v.AsInt64()
				if doubles[c.Name] {
					record[c.Name] = float64(n)
				} else {
					record[c.Name] = n
				}
			case field.KindFloat:
				f, _ := v.AsFloat64()
				record[c.Name] = f
			default:
				s, _ := v.AsString()
				record[c.Name] = s
			}
		}
		records[i] = record
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating parquet file")
	}
	w := parquet.NewGenericWriter[map[string]interface{}](f, schema)
	if _, err := w.Write(records); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing table %q", t.Name)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return errors.Wrapf(err, "closing parquet writer for %q", t.Name)
	}
	return f.Close()
}

// ImportParquet reads a parquet file into a new table with the given name.
// Integer and floating-point parquet columns map to Number, byte-array
// columns to Text; anything else is rejected.
func ImportParquet(name, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening parquet file")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "reading parquet file size")
	}
	pq, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, errors.Wrap(err, "opening parquet file")
	}

	t := &Table{Name: name}
	for _, fld := range pq.Schema().Fields() {
		if !fld.Leaf() {
			return nil, errors.Errorf("column %q: nested parquet groups are not supported", fld.Name())
		}
		var typ field.Type
		switch fld.Type().Kind() {
		case parquet.Int32, parquet.Int64, parquet.Float, parquet.Double:
			typ = field.TypeNumber
		case parquet.ByteArray, parquet.FixedLenByteArray:
			typ = field.TypeText
		default:
			return nil, errors.Errorf("column %q: unsupported parquet kind %s", fld.Name(), fld.Type().Kind())
		}
		t.Columns = append(t.Columns, NewColumn(fld.Name(), typ))
	}

	reader := parquet.NewReader(pq)
	defer reader.Close()
	for {
		raw := make(map[string]interface{})
		if err := reader.Read(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrap(err, "reading parquet row")
		}
		values := make([]field.Value, len(t.Columns))
		for i, c := range t.Columns {
			v, err := fieldValue(raw[c.Name])
			if err != nil {
				return nil, errors.Wrapf(err, "column %q", c.Name)
			}
			values[i] = v
		}
		if err := t.Insert(values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// fieldValue converts a decoded parquet value to the store's value domain.
func fieldValue(raw interface{}) (field.Value, error) {
	switch v := raw.(type) {
	case nil:
		return field.None(), nil
	case int32:
		return field.Integer(int64(v)), nil
	case int64:
		return field.Integer(v), nil
	case float32:
		return field.Float(float64(v)), nil
	case float64:
		return field.Float(v), nil
	case string:
		return field.Text(v), nil
	case []byte:
		return field.Text(string(v)), nil
	default:
		return field.None(), errors.Errorf("unsupported parquet value of type %T", raw)
	}
}
