package types

import (
	"encoding"
	"fmt"
	"gopkg.in/inf.v0"
	"strconv"
	"time"
)

type fromJsonFn func(value interface{}) (interface{}, error)

func StringerToString(value interface{}) interface{} {
	switch value := value.(type) {
	case *inf.Dec:
		if value == nil {
			return nil
		}
		return value.String()
	case fmt.Stringer:
		return value.String()
	default:
		return value
	}
}

func TimeAsString(value interface{}) interface{} {
	switch value := value.(type) {
	case time.Time:
		return marshalText(value)
	case *time.Time:
		if value == nil {
			return nil
		}
		return marshalText(*value)
	default:
		return value
	}
}

func marshalText(value encoding.TextMarshaler) *string {
	buff, err := value.MarshalText()
	if err != nil {
		return nil
	}

	var s = string(buff)
	return &s
}

// StringToInt parses request parameters that are expected to be integers.
// Both "" and non numeric values are reported as not ok.
func StringToInt(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return i, true
}

func unmarshallerToText(factory func() encoding.TextUnmarshaler) fromJsonFn {
	return func(value interface{}) (interface{}, error) {
		switch value := value.(type) {
		case string:
			t := factory()
			err := t.UnmarshalText([]byte(value))
			if err != nil {
				return nil, err
			}

			return t, nil
		case []byte:
			t := factory()
			err := t.UnmarshalText(value)
			if err != nil {
				return nil, err
			}

			return t, nil
		default:
			return value, nil
		}
	}
}

var StringToTime fromJsonFn = unmarshallerToText(func() encoding.TextUnmarshaler {
	return &time.Time{}
})

var StringToDecimal = unmarshallerToText(func() encoding.TextUnmarshaler {
	return &inf.Dec{}
})
