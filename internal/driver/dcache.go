package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/project"
	"pixelwalle/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки скриптов на диске, ключ —
// хеш содержимого файла вместе с настройками проверки.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one script.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash project.Digest

	// Diagnostics keep byte offsets only; the file ID is reattached on load.
	Diagnostics []CachedDiagnostic
	Dropped     int
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	Fixes    []CachedFix
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
	// Detached notes had no location.
	Detached bool
}

type CachedFix struct {
	Title string
	Edits []CachedEdit
}

type CachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "checks", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or one from another schema is a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// bagToPayload flattens a checked file's diagnostics for caching.
func bagToPayload(path string, hash project.Digest, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: hash,
		Diagnostics: make([]CachedDiagnostic, 0, bag.Len()),
		Dropped:     bag.Dropped(),
	}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{
				Start:    n.Span.Start,
				End:      n.Span.End,
				Msg:      n.Msg,
				Detached: n.Span == source.Span{},
			})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// payloadToBag rebuilds the diagnostics of payload against file.
func payloadToBag(payload *DiskPayload, file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			span := source.Span{File: file, Start: n.Start, End: n.End}
			if n.Detached {
				span = source.Span{}
			}
			d = d.WithNote(span, n.Msg)
		}
		for _, f := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(f.Edits))
			for _, e := range f.Edits {
				edits = append(edits, diag.FixEdit{
					Span:    source.Span{File: file, Start: e.Start, End: e.End},
					NewText: e.NewText,
				})
			}
			d = d.WithFix(f.Title, edits...)
		}
		bag.Add(d)
	}
	return bag
}
