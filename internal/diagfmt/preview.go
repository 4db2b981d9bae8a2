package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// fixEditPreview holds the lines touched by one edit, before and after applying it.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if !knownSpan(fs, edit.Span) {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	file := fs.Get(edit.Span.File)

	startPos, endPos := fs.Resolve(edit.Span)
	endLine := max(endPos.Line, startPos.Line)

	blockStart := lineStartOffset(file, startPos.Line)
	blockEnd := max(lineEndOffset(file, endLine), blockStart)

	original := file.Content[blockStart:blockEnd]
	relStart := int(edit.Span.Start) - int(blockStart)
	relEnd := int(edit.Span.End) - int(blockStart)
	if relStart < 0 || relEnd < relStart || relEnd > len(original) {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range for preview block", edit.Span)
	}

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	// последний \n не порождает пустую строку
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line - 2); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

// lineEndOffset is the offset just past the line's '\n', or the end of file.
func lineEndOffset(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line - 1); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}
