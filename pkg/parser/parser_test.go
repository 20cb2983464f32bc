package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotedFieldRoundTrip(t *testing.T) {
	// A quoted field with an embedded comma, escaped quotes, and an
	// embedded newline must come back verbatim.
	input := "Task Name,Notes,Status\n" +
		"Alpha,\"Paid $1,200 for \"\"rush\"\" job\nand setup\",Open\n"

	result := Parse(input)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "Alpha", row["Task Name"])
	assert.Equal(t, "Paid $1,200 for \"rush\" job\nand setup", row["Notes"])
	assert.Equal(t, "Open", row["Status"])
}

func TestParseHeaderOrder(t *testing.T) {
	result := Parse("b,a,c\n1,2,3\n")
	assert.Equal(t, []string{"b", "a", "c"}, result.Headers)
}

func TestParseShortRowPadsEmptyFields(t *testing.T) {
	result := Parse("a,b,c\n1,2\n")
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "1", result.Rows[0]["a"])
	assert.Equal(t, "2", result.Rows[0]["b"])
	assert.Equal(t, "", result.Rows[0]["c"])
}

func TestParseSkipsBlankLines(t *testing.T) {
	result := Parse("a,b\n\n1,2\n   \n3,4\n")
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "3", result.Rows[1]["a"])
}

func TestParseTrimsFieldWhitespace(t *testing.T) {
	result := Parse("a,b\n  1  ,  2  \n")
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "1", result.Rows[0]["a"])
	assert.Equal(t, "2", result.Rows[0]["b"])
}

func TestParseUnbalancedQuoteFlushesTrailingRow(t *testing.T) {
	// A quote that never closes must not drop buffered content and
	// must not panic; the trailing content flushes as a final row.
	result := Parse("a,b\n\"unclosed,still here\n")
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "unclosed,still here", result.Rows[0]["a"])
	assert.Equal(t, "", result.Rows[0]["b"])
}

func TestParseCRLFInput(t *testing.T) {
	result := Parse("a,b\r\n1,2\r\n")
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2", result.Rows[0]["b"])
}

func TestParseEmptyInput(t *testing.T) {
	result := Parse("")
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Headers)
}
