package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cjsflat/internal/diag"
	"cjsflat/internal/project"
	"cjsflat/internal/source"
)

// Увеличивать при любом изменении формата payload'ов или вывода.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file scan and rewrite results on disk, keyed by a
// digest of the content and every setting that affects the output. Safe
// for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// ScanPayload caches the classification of one file.
type ScanPayload struct {
	Schema uint16
	Type   uint8 // modpath.ModuleType
}

// RewritePayload caches everything a rewrite produced for one file.
// Spans are stored without their FileID, which differs between runs.
type RewritePayload struct {
	Schema      uint16
	Output      string
	Diagnostics []CachedDiagnostic
	Summary     Summary
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start, End uint32
	Msg        string
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
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

// OpenDiskCacheAt opens a cache rooted at dir, creating it.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(kind string, key project.Digest) string {
	return filepath.Join(c.dir, kind, key.String()+".mp")
}

// Put writes v under kind/key through a temporary file and a rename.
func (c *DiskCache) Put(kind string, key project.Digest, v any) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(kind, key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // после rename файла уже нет

	if err := msgpack.NewEncoder(f).Encode(v); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get decodes kind/key into out. A missing entry is (false, nil).
func (c *DiskCache) Get(kind string, key project.Digest, out any) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(kind, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every entry.
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
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func cacheDiagnostics(items []diag.Diagnostic) []CachedDiagnostic {
	out := make([]CachedDiagnostic, 0, len(items))
	for _, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		out = append(out, cd)
	}
	return out
}

// restoreDiagnostics re-attaches cached diagnostics to file.
func restoreDiagnostics(bag *diag.Bag, file source.FileID, cached []CachedDiagnostic) {
	for _, cd := range cached {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		bag.Add(d)
	}
}

func restoreSpans(file source.FileID, spans []source.Span) []source.Span {
	out := make([]source.Span, len(spans))
	for i, sp := range spans {
		sp.File = file
		out[i] = sp
	}
	return out
}
