package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cvlint/internal/diag"
	"cvlint/internal/source"
)

// Increment when the payload format changes; mismatched entries are misses.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-unit diagnostics keyed by content hash, so unchanged
// files skip analysis across runs. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedSpan is a span with the file identity dropped; replay re-points it
// at the freshly loaded file.
type cachedSpan struct {
	Start uint32
	End   uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedFixEdit struct {
	Span    cachedSpan
	NewText string
}

type cachedFix struct {
	Title string
	Edits []cachedFixEdit
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Entity   string
	Span     cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

// diskPayload is the serialized form of one unit's diagnostics.
type diskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []cachedDiagnostic
}

// OpenDiskCache initializes a disk cache under the standard cache location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "units", hex.EncodeToString(key[:])+".mp")
}

// Store writes the bag for file's current content.
func (c *DiskCache) Store(file *source.File, bag *diag.Bag) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := diskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
	}
	for _, d := range bag.Items() {
		cached := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Entity:   d.Entity,
			Span:     cachedSpan{Start: d.Primary.Start, End: d.Primary.End},
		}
		for _, n := range d.Notes {
			cached.Notes = append(cached.Notes, cachedNote{
				Span: cachedSpan{Start: n.Span.Start, End: n.Span.End},
				Msg:  n.Msg,
			})
		}
		for _, f := range d.Fixes {
			fix := cachedFix{Title: f.Title}
			for _, e := range f.Edits {
				fix.Edits = append(fix.Edits, cachedFixEdit{
					Span:    cachedSpan{Start: e.Span.Start, End: e.Span.End},
					NewText: e.NewText,
				})
			}
			cached.Fixes = append(cached.Fixes, fix)
		}
		payload.Diagnostics = append(payload.Diagnostics, cached)
	}

	p := c.pathFor(file.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Replay loads the cached diagnostics for file's content into bag,
// re-pointing every span at file's current ID. Returns false on a miss.
func (c *DiskCache) Replay(file *source.File, bag *diag.Bag) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash))
	if err != nil {
		return false
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return false
	}

	span := func(s cachedSpan) source.Span {
		return source.Span{File: file.ID, Start: s.Start, End: s.End}
	}
	for _, cached := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cached.Severity),
			Code:     diag.Code(cached.Code),
			Message:  cached.Message,
			Entity:   cached.Entity,
			Primary:  span(cached.Span),
		}
		for _, n := range cached.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: span(n.Span), Msg: n.Msg})
		}
		for _, fx := range cached.Fixes {
			fix := diag.Fix{Title: fx.Title}
			for _, e := range fx.Edits {
				fix.Edits = append(fix.Edits, diag.FixEdit{Span: span(e.Span), NewText: e.NewText})
			}
			d.Fixes = append(d.Fixes, fix)
		}
		bag.Add(d)
	}
	return true
}

// DropAll invalidates the whole cache, useful after schema changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
