package source

import "fmt"

// FileID is the index of a file in its FileSet, starting at 0.
type FileID uint32

// FileFlags record how content was obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // из памяти: stdin, тесты
	FileHadBOM                               // UTF-8 BOM снят при загрузке
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is one loaded input. LineIdx holds the offset of every '\n' in
// Content; Hash is the sha256 of Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

func (f *File) IsVirtual() bool { return f.Flags&FileVirtual != 0 }

// LineCol is a 1-based line and column; columns count bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Col) }
