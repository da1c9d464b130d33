package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXRendererLayout(t *testing.T) {
	data, err := XLSXRenderer{}.Render(Compose(samplePlan()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)

	cells := map[string]string{}
	var firstColumn []string
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			firstColumn = append(firstColumn, row[0])
		}
		if len(row) > 1 {
			cells[row[0]] = row[1]
		}
	}

	assert.Equal(t, "Strategic Call Plan", firstColumn[0])
	assert.Equal(t, "Q1", cells["[S] Situation - Context Questions"])
	assert.Equal(t, NotAvailable, cells["[P] Problem - Pain Point Questions"])
	assert.Equal(t, NotAvailable, cells["Response Strategy (Feel-Felt-Found)"])

	headings := []string{}
	for _, v := range firstColumn {
		switch v {
		case "1. Target Client", "2. Social Style Strategy", "3. SPIN Selling Plan", "4. Storytelling & Objection Handling":
			headings = append(headings, v)
		}
	}
	assert.Equal(t, []string{
		"1. Target Client",
		"2. Social Style Strategy",
		"3. SPIN Selling Plan",
		"4. Storytelling & Objection Handling",
	}, headings)
	assert.Equal(t, "Supporting Healthcare Representatives", firstColumn[len(firstColumn)-1])
}
