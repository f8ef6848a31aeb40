package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("09:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.Error(t, TimeString("24:00").Validate())
	assert.Error(t, TimeString("9:00").Validate())
	assert.Error(t, TimeString("09:60").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("morning").Validate())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	got, err = TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// Конец суток представляется как 24:00
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// Переход через полночь - ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("10:30").IsAfter(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// TIME колонка приходит как time.Time
	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	// Текстовая колонка с секундами
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_JSON(t *testing.T) {
	data, err := json.Marshal(TimeString("09:00"))
	require.NoError(t, err)
	assert.Equal(t, `"09:00"`, string(data))

	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"17:45"`), &ts))
	assert.Equal(t, TimeString("17:45"), ts)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`17`), &ts))
}
