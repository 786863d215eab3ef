package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "missing leading zero afternoon", input: "9:30", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "10:61", wantErr: true},
		{name: "end of day is not a time of day", input: "24:00", wantErr: true},
		{name: "non-digit hour", input: "aa:00", wantErr: true},
		{name: "trailing seconds", input: "10:00:00", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "add within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "add across hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "reach end of day boundary", start: "23:30", minutes: 30, want: "24:00"},
		{name: "negative shift", start: "10:00", minutes: -30, want: "09:30"},
		{name: "overflow past midnight", start: "23:50", minutes: 30, wantErr: true},
		{name: "underflow before midnight", start: "00:10", minutes: -30, wantErr: true},
		{name: "invalid base value", start: "bad", minutes: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))

	// "24:00" как правая граница сравнивается корректно
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
}

func TestTimeString_MinutesOfDay(t *testing.T) {
	minutes, err := TimeString("10:30").MinutesOfDay()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	// EndOfDay - единственное допустимое значение за пределами 00:00-23:59
	minutes, err = EndOfDay.MinutesOfDay()
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)

	_, err = TimeString("").MinutesOfDay()
	assert.Error(t, err)

	// Неканоничная форма не участвует в арифметике: лексикографические
	// сравнения для неё некорректны
	_, err = TimeString("9:30").MinutesOfDay()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    TimeString
		wantErr bool
	}{
		{name: "postgres time with seconds", src: "10:30:00", want: "10:30"},
		{name: "bare time", src: "10:30", want: "10:30"},
		{name: "end of day boundary", src: "24:00:00", want: EndOfDay},
		{name: "bytes", src: []byte("08:15:00"), want: "08:15"},
		{name: "time.Time", src: time.Date(2026, 3, 12, 14, 45, 0, 0, time.UTC), want: "14:45"},
		{name: "nil", src: nil, want: ""},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			err := ts.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	// Правая граница окна пишется в TIME как есть
	v, err = EndOfDay.Value()
	require.NoError(t, err)
	assert.Equal(t, "24:00", v)

	_, err = TimeString("9:30").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
