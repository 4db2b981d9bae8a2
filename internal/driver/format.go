package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"pixelwalle/internal/format"
	"pixelwalle/internal/source"
)

// FormatOptions configures script formatting.
type FormatOptions struct {
	Check          bool
	MaxDiagnostics int
	Options        format.Options
	Stdout         bool
}

// FormatResult captures the result of formatting a single script.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// ErrParseErrors is reported for scripts the formatter refuses to touch.
var ErrParseErrors = errors.New("format: parse errors present")

// FormatPaths formats the given scripts and directories (recursively collecting
// .pw files). With opts.Check nothing is written and Changed reports whether
// formatting would alter the file. With opts.Stdout the formatted bytes are
// returned in the results instead of being written back.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectScripts(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no scripts found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := FormatResult{Path: path}
		formatted, changed, err := formatSingleFile(path, opts)
		switch {
		case err != nil:
			result.Err = err
		case opts.Check:
			result.Changed = changed
		case opts.Stdout:
			result.Formatted = formatted
			result.Changed = changed
		case changed:
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func formatSingleFile(path string, opts FormatOptions) (formatted []byte, changed bool, err error) {
	res, err := Parse(path, Options{MaxDiagnostics: opts.MaxDiagnostics})
	if err != nil {
		return nil, false, err
	}
	if res.Bag.HasErrors() || res.Stopped {
		return nil, false, fmt.Errorf("%w (%d diagnostics)", ErrParseErrors, res.Bag.Len())
	}

	formatted, err = format.FormatFile(res.File, res.Builder, res.Root, opts.Options)
	if err != nil {
		return nil, false, err
	}

	// BOM и CRLF уже сняты при загрузке, на диске они ещё есть
	rewritten := res.File.Flags&(source.FileHadBOM|source.FileNormalizedCRLF) != 0
	changed = rewritten || !bytes.Equal(res.File.Content, formatted)
	return formatted, changed, nil
}

func collectScripts(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		scripts, err := ListScripts(p)
		if err != nil {
			return nil, err
		}
		for _, s := range scripts {
			addFile(s)
		}
	}

	sort.Strings(files)
	return files, nil
}
