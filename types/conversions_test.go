package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/inf.v0"
)

func TestStringToInt(t *testing.T) {
	items := []struct {
		value    string
		expected int
		ok       bool
	}{
		{"12", 12, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
	}

	for _, item := range items {
		value, ok := StringToInt(item.value)
		assert.Equal(t, item.ok, ok, item.value)
		assert.Equal(t, item.expected, value, item.value)
	}
}

func TestStringToDecimal(t *testing.T) {
	value, err := StringToDecimal("45.50")
	assert.NoError(t, err)
	assert.Equal(t, "45.50", value.(*inf.Dec).String())

	value, err = StringToDecimal([]byte("0.99"))
	assert.NoError(t, err)
	assert.Equal(t, "0.99", value.(*inf.Dec).String())

	_, err = StringToDecimal("cheap")
	assert.Error(t, err)
}

func TestStringToTime(t *testing.T) {
	value, err := StringToTime("2020-03-01T10:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC), *value.(*time.Time))

	_, err = StringToTime("yesterday")
	assert.Error(t, err)
}

func TestTimeAsString(t *testing.T) {
	value := time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2020-03-01T10:00:00Z", *TimeAsString(value).(*string))
	assert.Equal(t, "2020-03-01T10:00:00Z", *TimeAsString(&value).(*string))

	var nilTime *time.Time
	assert.Nil(t, TimeAsString(nilTime))
}

func TestStringerToString(t *testing.T) {
	assert.Equal(t, "12.00", StringerToString(inf.NewDec(1200, 2)))

	var nilDec *inf.Dec
	assert.Nil(t, StringerToString(nilDec))
	assert.Equal(t, 7, StringerToString(7))
}
