package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/source"
)

type treeBlock struct {
	lines []string
	width int
	root  int
}

// FormatASTTree draws the script top-down with /|\ connectors.
// Wide scripts get wide output; use FormatASTPretty for long files.
func FormatASTTree(w io.Writer, builder *ast.Builder, root ast.StmtID, fs *source.FileSet) error {
	node, err := buildScriptTreeNode(builder, root, fs)
	if err != nil {
		return err
	}
	for _, line := range renderTree(node).lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func padRight(s string, width int) string {
	if n := runewidth.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// renderTree converts a treeNode into a treeBlock containing an ASCII-art representation.
// width is the display width of the block, root the column of the node's connector.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := runewidth.StringWidth(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		maxChildHeight = max(maxChildHeight, len(childBlocks[i].lines))
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	// метка шире детей: сдвигаем детей вправо
	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
	} else {
		rootPos += shift
	}

	rootLine := strings.Repeat(" ", shift) + label
	width := max(totalWidth, shift+labelWidth, rootPos+1)
	rootLine = padRight(rootLine, width)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	childLines := make([]string, maxChildHeight)
	for row := range maxChildHeight {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childPrefix))
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			sb.WriteString(padRight(line, block.width))
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		childLines[row] = padRight(sb.String(), width)
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, string(connector))
	lines = append(lines, childLines...)

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}
