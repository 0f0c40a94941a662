package db

import (
	"github.com/gatortrader/gatortrader-api/types"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/inf.v0"
	"reflect"
	"strings"
	"time"
)

// Record is a single result row keyed by column name. When the row spans more
// than one table (a join), columns are nested under their table name.
type Record map[string]interface{}

// newRecord converts a scanned row into a Record. Column names qualified as
// "table.column" are nested by table when more than one table contributes
// columns, and unqualified otherwise.
func newRecord(row map[string]interface{}) Record {
	tables := make(map[string]bool)
	for column := range row {
		if i := strings.IndexByte(column, '.'); i > 0 {
			tables[column[:i]] = true
		}
	}

	record := make(Record, len(row))
	if len(tables) <= 1 {
		for column, value := range row {
			if i := strings.IndexByte(column, '.'); i > 0 {
				column = column[i+1:]
			}
			record[column] = value
		}
		return record
	}

	for column, value := range row {
		i := strings.IndexByte(column, '.')
		if i <= 0 {
			record[column] = value
			continue
		}
		table, name := column[:i], column[i+1:]
		nested, ok := record[table].(map[string]interface{})
		if !ok {
			nested = make(map[string]interface{})
			record[table] = nested
		}
		nested[name] = value
	}
	return record
}

// Table returns the columns nested under name, or the record itself when it
// is not nested.
func (r Record) Table(name string) Record {
	if nested, ok := r[name].(map[string]interface{}); ok {
		return Record(nested)
	}
	return r
}

// Nested returns the columns nested under name and whether the record holds
// such a table.
func (r Record) Nested(name string) (Record, bool) {
	nested, ok := r[name].(map[string]interface{})
	return Record(nested), ok
}

func (r Record) IsEmpty() bool {
	return len(r) == 0
}

// Decode copies the record into out, a pointer to a struct whose fields are
// tagged with `db:"column"`. Values are converted weakly, so text protocol
// values such as []byte("42") decode into numeric fields.
func (r Record) Decode(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			bytesToStringHook,
			stringToTimeHook,
			stringToDecimalHook,
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(r))
}

var (
	bytesType      = reflect.TypeOf([]byte(nil))
	timeType       = reflect.TypeOf(time.Time{})
	decimalType    = reflect.TypeOf(inf.Dec{})
	decimalPtrType = reflect.TypeOf(&inf.Dec{})
)

const mysqlDateTimeLayout = "2006-01-02 15:04:05"

func bytesToStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from != bytesType || to == bytesType {
		return data, nil
	}
	return string(data.([]byte)), nil
}

func stringToTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	s, ok := data.(string)
	if !ok || to != timeType {
		return data, nil
	}
	if t, err := time.Parse(mysqlDateTimeLayout, s); err == nil {
		return t, nil
	}
	return types.StringToTime(s)
}

func stringToDecimalHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType && to != decimalPtrType {
		return data, nil
	}
	if _, ok := data.(string); !ok {
		return data, nil
	}
	return types.StringToDecimal(data)
}
