package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves byte offsets to
// line/column positions. A FileSet is not safe for concurrent mutation; the
// driver fills it before fanning work out and only reads it afterwards.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet that formats paths relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir returns the directory used for relative paths (cwd when unset).
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores content under path, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists:
// a rewritten document is a new version, older versions stay resolvable.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	f := NewFile(id, path, content, flags)
	fileSet.files = append(fileSet.files, *f)
	fileSet.index[f.Path] = id
	return id
}

// NewFile builds a standalone File that is not registered in any FileSet.
// Syntax trees produced by rewrites use it for their rendered text.
func NewFile(id FileID, path string, content []byte, flags FileFlags) *File {
	return &File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Load reads a file from disk, strips a UTF-8 BOM and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len returns the number of file versions stored.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.Resolve(span)
}

// Resolve converts a span of this file into line and column positions.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Position converts a byte offset into a line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// LineStart returns the byte offset of the first byte of the 1-based line.
func (f *File) LineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := int(line) - 2
	if idx >= len(f.LineIdx) {
		return f.size()
	}
	return f.LineIdx[idx] + 1
}

// GetLine returns the text of the 1-based line without its line terminator.
// Returns an empty string when the line does not exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum)-2 >= len(f.LineIdx) {
		return ""
	}
	start := f.LineStart(lineNum)
	end := f.size()
	if int(lineNum)-1 < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	line := f.Content[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}

// Indentation returns the run of spaces and tabs that starts the line containing off.
func (f *File) Indentation(off uint32) string {
	pos := f.Position(off)
	start := f.LineStart(pos.Line)
	end := start
	for end < f.size() && (f.Content[end] == ' ' || f.Content[end] == '\t') {
		end++
	}
	return string(f.Content[start:end])
}

func (f *File) size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// FormatPath formats the file path according to mode.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		// короткие и относительные пути оставляем как есть
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
