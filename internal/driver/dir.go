package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/observ"
	"pixelwalle/internal/project"
	"pixelwalle/internal/source"
	"pixelwalle/internal/trace"
)

// ScriptExt is the conventional script extension picked up by CheckDir.
const ScriptExt = ".pw"

// Status is the state of one file in a batch check.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports batch progress; Phase is "lex", "parse" or "check" while
// Status is StatusWorking.
type Event struct {
	File   string
	Phase  string
	Status Status
}

// DirOptions configure CheckDir on top of the per-file Options.
type DirOptions struct {
	// Jobs limits concurrent checks; 0 means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	// Events, when set, receives progress and is closed when CheckDir returns.
	// The caller must drain it concurrently.
	Events chan<- Event
}

// FileResult is the outcome for one script of a directory.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Check is nil for cache hits and load failures.
	Check  *CheckResult
	Cached bool
	Err    error
	Timing observ.Report
}

// ListScripts returns every *.pw file under dir, sorted.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ScriptExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every script under dir in parallel. Results keep the
// order of ListScripts. Scripts share one FileSet, loaded up front.
func CheckDir(ctx context.Context, dir string, opts Options, dirOpts DirOptions) (*source.FileSet, []FileResult, error) {
	if dirOpts.Events != nil {
		defer close(dirOpts.Events)
	}
	files, err := ListScripts(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return fileSet, results, nil
	}

	// FileSet не потокобезопасен на запись: грузим всё до запуска горутин
	for i, path := range files {
		results[i].Path = path
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			results[i].Err = loadErr
			continue
		}
		results[i].FileID = fileID
	}

	jobs := dirOpts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.ScopeDriver, "check-dir", 0)
	defer dirSpan.End("")

	settings := opts.digest()
	emit := func(ev Event) {
		if dirOpts.Events == nil {
			return
		}
		select {
		case dirOpts.Events <- ev:
		case <-ctx.Done():
		}
	}
	for _, path := range files {
		emit(Event{File: path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range results {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			r := &results[i]
			if r.Err != nil {
				emit(Event{File: r.Path, Status: StatusError})
				return nil
			}
			file := fileSet.Get(r.FileID)
			key := project.Combine(file.Hash, settings)

			var payload DiskPayload
			hit, cacheErr := dirOpts.Cache.Get(key, &payload)
			if cacheErr == nil && hit && payload.ContentHash == file.Hash {
				r.Bag = payloadToBag(&payload, r.FileID, opts.maxDiagnostics())
				r.Cached = true
				emit(Event{File: r.Path, Status: doneStatus(r.Bag)})
				return nil
			}

			fileOpts := opts
			// у каждого файла свой холст
			fileOpts.Host = nil
			fileOpts.Observer = func(ev observ.PhaseEvent) {
				if ev.Status == observ.PhaseStart {
					emit(Event{File: r.Path, Phase: ev.Name, Status: StatusWorking})
				}
			}
			modSpan := trace.Begin(tracer, trace.ScopeScript, "file:"+r.Path, dirSpan.ID())
			checked, checkErr := checkFile(gctx, fileSet, file, fileOpts, modSpan.ID())
			modSpan.End("")
			if checkErr != nil {
				r.Err = checkErr
				emit(Event{File: r.Path, Status: StatusError})
				return nil
			}
			r.Check = checked
			r.Bag = checked.Bag
			r.Timing = checked.Timer.Report()

			if putErr := dirOpts.Cache.Put(key, bagToPayload(r.Path, file.Hash, checked.Bag)); putErr != nil {
				trace.Point(tracer, trace.ScopeScript, "cache-put-failed", modSpan.ID(), putErr.Error())
			}
			emit(Event{File: r.Path, Status: doneStatus(r.Bag)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func doneStatus(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}

// digest fingerprints the options that influence diagnostics.
func (o Options) digest() project.Digest {
	c := o.Canvas
	return sha256.Sum256(fmt.Appendf(nil, "%d|%s|%t|%dx%d|%s",
		o.maxDiagnostics(), o.Mode, o.NoSuggestions, c.Width, c.Height, c.Background.Name()))
}
