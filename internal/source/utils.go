package source

import (
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == utf8BOM[0] && content[1] == utf8BOM[1] && content[2] == utf8BOM[2] {
		return content[3:], true
	}

	return content, false
}

// WithBOM returns content prefixed with the UTF-8 BOM when the file had one on load.
func (f *File) WithBOM(content []byte) []byte {
	if f.Flags&FileHadBOM == 0 {
		return content
	}
	out := make([]byte, 0, len(content)+len(utf8BOM))
	out = append(out, utf8BOM...)
	return append(out, content...)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим количество '\n' строго перед off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := lo // индекс строки (0-based)

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}

	lineNo, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to baseDir, falling back to the
// normalised absolute path when the file lives outside baseDir.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return normalizePath(absPath), nil
	}
	if rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(path)
}
