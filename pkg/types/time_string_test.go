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
		wantErr error
	}{
		{name: "canonical", input: "14:00", want: "14:00"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "with seconds from db", input: "14:00:00", want: "14:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "past end of day", input: "24:30", wantErr: ErrTimeOutOfRange},
		{name: "bad minutes", input: "10:7", wantErr: ErrInvalidTimeFormat},
		{name: "minutes overflow", input: "10:60", wantErr: ErrInvalidTimeFormat},
		{name: "garbage", input: "noon", wantErr: ErrInvalidTimeFormat},
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
		{name: "plus sign hour", input: "+9:00", wantErr: ErrInvalidTimeFormat},
		{name: "negative hour", input: "-0:30", wantErr: ErrInvalidTimeFormat},
		{name: "signed minutes", input: "10:+5", wantErr: ErrInvalidTimeFormat},
		{name: "signed seconds", input: "10:00:-1", wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("14:00")

	end, err := start.AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("16:00"), end)

	end, err = TimeString("22:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = TimeString("23:00").AddMinutes(120)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:59"))
	assert.Equal(t, 600, TimeString("10:00").Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 17, 45, 30, 0, time.UTC)))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:05").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:05:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
