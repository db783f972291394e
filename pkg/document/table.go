package document

import (
	"strings"

	"github.com/pkg/errors"
)

// Table nodes keep their raw multi-line text verbatim; the helpers here
// derive cell structure on demand and write cells back in place. Row 0 is
// the header row; the separator line is never addressable.

// TableCells returns the trimmed cell texts of a table node's content,
// header first, separator excluded.
func TableCells(content string) [][]string {
	var rows [][]string
	for i, line := range strings.Split(content, "\n") {
		if i == 1 {
			continue // separator
		}
		rows = append(rows, splitTableRow(line))
	}
	return rows
}

func splitTableRow(line string) []string {
	segs := strings.Split(line, "|")
	if len(segs) > 0 && strings.TrimSpace(segs[0]) == "" && strings.HasPrefix(line, "|") {
		segs = segs[1:]
	}
	if len(segs) > 0 && strings.TrimSpace(segs[len(segs)-1]) == "" && strings.HasSuffix(line, "|") {
		segs = segs[:len(segs)-1]
	}
	cells := make([]string, len(segs))
	for i, s := range segs {
		cells[i] = strings.TrimSpace(s)
	}
	return cells
}

// SetTableCell rewrites a single cell of a table node, leaving every other
// cell's raw text untouched.
func (t *Tree) SetTableCell(nodeID string, row, col int, text string) error {
	node := t.FindNodeByID(nodeID)
	if node == nil {
		return errors.Wrapf(ErrNodeNotFound, "id %q", nodeID)
	}
	if node.kind != Table {
		return errors.Errorf("node %q is %s, not a table", nodeID, node.kind)
	}

	lines := strings.Split(node.content, "\n")
	lineIdx := row
	if row > 0 {
		lineIdx = row + 1 // skip the separator line
	}
	if row < 0 || lineIdx >= len(lines) {
		return errors.Errorf("row %d out of range", row)
	}

	rewritten, err := replaceTableCell(lines[lineIdx], col, text)
	if err != nil {
		return err
	}
	lines[lineIdx] = rewritten
	node.content = strings.Join(lines, "\n")
	return nil
}

func replaceTableCell(line string, col int, text string) (string, error) {
	leading := strings.HasPrefix(line, "|")
	trailing := strings.HasSuffix(line, "|")
	segs := strings.Split(line, "|")

	idx := col
	if leading {
		idx++
	}
	last := len(segs) - 1
	if trailing {
		last--
	}
	if col < 0 || idx > last {
		return "", errors.Errorf("column %d out of range", col)
	}

	segs[idx] = " " + text + " "
	return strings.Join(segs, "|"), nil
}
