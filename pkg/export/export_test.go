package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Grade Prediction",
		Headers: []string{"Course", "Current Grade", "Total Weight", "Remaining"},
		Rows: [][]string{
			{"Intro to SE", "86", "0.5", "0.5"},
			{"Software Testing", "", "0", "1"},
		},
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course,Current Grade,Total Weight,Remaining", lines[0])
	assert.Equal(t, "Intro to SE,86,0.5,0.5", lines[1])
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := CSV(Table{})
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleTable())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFRequiresHeaders(t *testing.T) {
	_, err := PDF(Table{})
	assert.Error(t, err)
}
