package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mlab-site/labpubs/internal/publication"
)

func TestWriteXLSX(t *testing.T) {
	pubs := []publication.Publication{
		{ID: "j25", Category: publication.International, SubCategory: publication.Journal, Title: "Tracking", Year: 2025, DOI: "10.1/x"},
		{ID: "d25", Category: publication.Domestic, SubCategory: publication.Conference, Title: "行動認識", Year: 2025},
		{ID: "c23", Category: publication.International, SubCategory: publication.Conference, Title: "Few-shot", Year: 2023},
		{ID: "nd", Category: publication.Domestic, SubCategory: publication.Other, Title: "Undated"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, pubs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetInternational, SheetDomestic}, f.GetSheetList())

	intl, err := f.GetRows(SheetInternational)
	require.NoError(t, err)
	require.Len(t, intl, 3)
	assert.Equal(t, "Year", intl[0][0])
	assert.Equal(t, []string{"2025", "Journal", "", "Tracking"}, intl[1][:4])
	assert.Equal(t, "10.1/x", intl[1][9])
	assert.Equal(t, "c23", intl[2][11])

	dom, err := f.GetRows(SheetDomestic)
	require.NoError(t, err)
	require.Len(t, dom, 3)
	assert.Equal(t, "行動認識", dom[1][3])
	assert.Equal(t, "", dom[2][0], "unknown year is left blank")
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetDomestic)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
