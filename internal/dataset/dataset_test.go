package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `COMPANY NAME,PLAN NAME,COVERAGE
Aetna,Gold Plus,"lipitor, metformin"
Cigna,Silver,ibuprofen
United,Bronze,
`

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return tbl
}

func TestReadCSV(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, []string{ColCompanyName, ColPlanName, ColCoverage}, tbl.Headers)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "Aetna", tbl.Rows[0][ColCompanyName])
	assert.Equal(t, "lipitor, metformin", tbl.Rows[0][ColCoverage])
	assert.Equal(t, "", tbl.Rows[2][ColCoverage])
}

func TestReadCSVRaggedRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("A,B,C\n1,2\n"))
	require.NoError(t, err)

	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "2", tbl.Rows[0]["B"])
	assert.Equal(t, "", tbl.Rows[0]["C"])
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLookupPlans(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name string
		want int
	}{
		{"aetna", 1},
		{"AETNA", 1},
		{"silver", 1},
		{"gold", 1},
		{"nonexistent", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Len(t, tbl.LookupPlans(tt.name), tt.want, tt.name)
	}
}

func TestMatchPlansByDrugs(t *testing.T) {
	tbl := sampleTable(t)

	rows := tbl.MatchPlansByDrugs([]string{"Lipitor"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Aetna", rows[0][ColCompanyName])

	rows = tbl.MatchPlansByDrugs([]string{"lipitor", "ibuprofen"})
	assert.Len(t, rows, 2)

	assert.Empty(t, tbl.MatchPlansByDrugs([]string{"aspirin"}))
	assert.Empty(t, tbl.MatchPlansByDrugs(nil))
	assert.Empty(t, tbl.MatchPlansByDrugs([]string{""}))
}

func TestDocuments(t *testing.T) {
	tbl := sampleTable(t)

	docs := tbl.Documents()
	require.Len(t, docs, 3)
	assert.Equal(t, "COMPANY NAME: Aetna\nPLAN NAME: Gold Plus\nCOVERAGE: lipitor, metformin", docs[0])
	// empty cells are skipped
	assert.Equal(t, "COMPANY NAME: United\nPLAN NAME: Bronze", docs[2])
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.LookupPlans("aetna"))
	assert.Nil(t, tbl.MatchPlansByDrugs([]string{"x"}))
	assert.Nil(t, tbl.Documents())
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	tbl, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
}

func TestLoadFileUnsupported(t *testing.T) {
	_, err := LoadFile("plans.json")
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
