package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedDecimalFloat64(t *testing.T) {
	assert.Equal(t, 1.5, FixedDecimal{Units: 1, Nanos: 500000000}.Float64())
	assert.Equal(t, -2.25, FixedDecimal{Units: -2, Nanos: -250000000}.Float64())
	assert.Equal(t, 0.0, FixedDecimal{}.Float64())
	assert.Equal(t, 1500.0, FixedDecimal{Units: 1500}.Float64())
	assert.InDelta(t, 0.15, FixedDecimal{Nanos: 150000000}.Float64(), 1e-15)
}

func TestFixedDecimalDecimal(t *testing.T) {
	assert.Equal(t, "1.5", FixedDecimal{Units: 1, Nanos: 500000000}.String())
	assert.Equal(t, "-2.25", FixedDecimal{Units: -2, Nanos: -250000000}.String())
	assert.Equal(t, "0.000000001", FixedDecimal{Nanos: 1}.String())
}

func TestFixedDecimalValidate(t *testing.T) {
	require.NoError(t, FixedDecimal{Units: 1, Nanos: 999999999}.Validate())
	require.NoError(t, FixedDecimal{Units: -1, Nanos: -999999999}.Validate())
	require.NoError(t, FixedDecimal{Units: 0, Nanos: -5}.Validate())

	err := FixedDecimal{Units: 0, Nanos: 1000000000}.Validate()
	require.ErrorIs(t, err, ErrMalformedDecimal)

	err = FixedDecimal{Units: 1, Nanos: -1}.Validate()
	require.ErrorIs(t, err, ErrMalformedDecimal)

	err = FixedDecimal{Units: -1, Nanos: 1}.Validate()
	require.ErrorIs(t, err, ErrMalformedDecimal)
}

func TestCalendarDateValidate(t *testing.T) {
	require.NoError(t, CalendarDate{Year: 2021, Month: 2, Day: 5}.Validate())
	require.NoError(t, CalendarDate{Year: 2024, Month: 2, Day: 29}.Validate())

	require.ErrorIs(t, CalendarDate{Year: 2021, Month: 13, Day: 1}.Validate(), ErrMalformedDate)
	require.ErrorIs(t, CalendarDate{Year: 2021, Month: 2, Day: 30}.Validate(), ErrMalformedDate)
	require.ErrorIs(t, CalendarDate{Year: 2021, Month: 0, Day: 1}.Validate(), ErrMalformedDate)
}

func TestCalendarDateTime(t *testing.T) {
	d := CalendarDate{Year: 2021, Month: 2, Day: 5}
	ts := d.Time()
	assert.Equal(t, 2021, ts.Year())
	assert.Equal(t, "2021-02-05", d.String())
}
