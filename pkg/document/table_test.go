package document

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCells(t *testing.T) {
	content := "| Name | Age |\n|------|-----|\n| Ada  | 36  |\n| Alan | 41  |"
	cells := TableCells(content)
	require.Len(t, cells, 3)
	assert.Equal(t, []string{"Name", "Age"}, cells[0])
	assert.Equal(t, []string{"Ada", "36"}, cells[1])
	assert.Equal(t, []string{"Alan", "41"}, cells[2])
}

func TestTableCells_WithoutOuterPipes(t *testing.T) {
	content := "a | b\n--|--\n1 | 2"
	cells := TableCells(content)
	require.Len(t, cells, 2)
	assert.Equal(t, []string{"a", "b"}, cells[0])
	assert.Equal(t, []string{"1", "2"}, cells[1])
}

func TestSetTableCell(t *testing.T) {
	tree := testParser().Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	table := tree.Children()[0]

	require.NoError(t, tree.SetTableCell(table.ID(), 1, 1, "42"))
	assert.Equal(t, "| a | b |\n|---|---|\n| 1 | 42 |", table.Content())

	// Header row is row 0.
	require.NoError(t, tree.SetTableCell(table.ID(), 0, 0, "x"))
	assert.Equal(t, "| x | b |\n|---|---|\n| 1 | 42 |", table.Content())

	cells := TableCells(table.Content())
	assert.Equal(t, "42", cells[1][1])
	assert.Equal(t, "x", cells[0][0])
}

func TestSetTableCell_PreservesSeparator(t *testing.T) {
	tree := testParser().Parse([]byte("| a |\n|:--|\n| 1 |\n"))
	table := tree.Children()[0]

	require.NoError(t, tree.SetTableCell(table.ID(), 1, 0, "new"))
	assert.Equal(t, "| a |\n|:--|\n| new |", table.Content())
}

func TestSetTableCell_Errors(t *testing.T) {
	tree := testParser().Parse([]byte("| a |\n|---|\n| 1 |\n\nplain\n"))
	table := tree.Children()[0]
	para := tree.Children()[1]

	err := tree.SetTableCell("missing", 0, 0, "x")
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	assert.Error(t, tree.SetTableCell(para.ID(), 0, 0, "x"))
	assert.Error(t, tree.SetTableCell(table.ID(), 9, 0, "x"))
	assert.Error(t, tree.SetTableCell(table.ID(), -1, 0, "x"))
	assert.Error(t, tree.SetTableCell(table.ID(), 0, 5, "x"))
}
