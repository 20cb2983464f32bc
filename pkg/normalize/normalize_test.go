package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateStripsOrdinalSuffix(t *testing.T) {
	iso, ok := Date("June 2nd, 2024")
	require.True(t, ok)
	assert.Equal(t, "2024-06-02T00:00:00Z", iso)

	iso, ok = Date("August 3rd, 2023")
	require.True(t, ok)
	assert.Equal(t, "2023-08-03T00:00:00Z", iso)
}

func TestDateStripsOffsetAnnotation(t *testing.T) {
	iso, ok := Date("July 15, 2024 UTC+2")
	require.True(t, ok)
	assert.Equal(t, "2024-07-15T00:00:00Z", iso)

	iso, ok = Date("July 15, 2024 (UTC)")
	require.True(t, ok)
	assert.Equal(t, "2024-07-15T00:00:00Z", iso)
}

func TestDateNumericFormats(t *testing.T) {
	iso, ok := Date("7/31/2024")
	require.True(t, ok)
	assert.Equal(t, "2024-07-31T00:00:00Z", iso)
}

func TestDateUnparseableReturnsAbsent(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "13/45/9999"} {
		iso, ok := Date(input)
		assert.False(t, ok, "input %q", input)
		assert.Empty(t, iso, "input %q", input)
	}
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, 1500.0, Currency("$1,500.00"))
	assert.Equal(t, 99.5, Currency("99.5"))
	assert.Equal(t, -250.0, Currency("-$250"))
	assert.Equal(t, 0.0, Currency(""))
	assert.Equal(t, 0.0, Currency("   "))
	assert.Equal(t, 0.0, Currency("n/a"))
	// Totality: NaN and Inf must never leak into billing math.
	assert.Equal(t, 0.0, Currency("NaN"))
	assert.Equal(t, 0.0, Currency("Inf"))
}

func TestNumberDistinguishesAbsentFromZero(t *testing.T) {
	v, ok := Number("0")
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = Number("")
	assert.False(t, ok)

	_, ok = Number("twelve")
	assert.False(t, ok)

	v, ok = Number("12.5")
	require.True(t, ok)
	assert.Equal(t, 12.5, v)
}
