package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, rewrite result).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM records that a UTF-8 BOM was stripped on load and must be restored on write.
	FileHadBOM
)

// File captures metadata and content for a single source file.
// Content is kept byte-for-byte as read (CRLF is not normalised), so a
// rendered syntax tree can be compared against it directly.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
