package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutputJSON(t *testing.T) {
	originalJSONL := jsonlOutput
	jsonlOutput = false
	defer func() { jsonlOutput = originalJSONL }()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []string{"name", "time"}))
	assert.Equal(t, "[\n  \"name\",\n  \"time\"\n]\n", buf.String())
}

func TestWriteOutputJSONLines(t *testing.T) {
	originalJSONL := jsonlOutput
	jsonlOutput = true
	defer func() { jsonlOutput = originalJSONL }()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, []map[string]int{{"a": 1}, {"b": 2}}))
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteOutput(&buf, map[string]int{"c": 3}))
	assert.Equal(t, "{\"c\":3}\n", buf.String())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"ID", "TITLE"}, [][]string{{"1", "Invite"}, {"22", "Reminder"}}))
	assert.Equal(t, "ID  TITLE\n1   Invite\n22  Reminder\n", buf.String())
}

func TestWriteTableFlattensAndTruncatesCells(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("x", 60)
	require.NoError(t, writeTable(&buf, []string{"A", "B"}, [][]string{{"one\ttwo\nthree", long}}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "one two three  "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], strings.Repeat("x", maxCellWidth-1)+"…"), lines[1])
}
