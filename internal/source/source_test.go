package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nef")
	idx := buildLineIndex(content)
	require.Equal(t, []uint32{2, 5, 6}, idx)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, toLineCol(idx, tc.off), "offset %d", tc.off)
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span{Start: 2, End: 6}
	assert.True(t, a.Overlaps(Span{Start: 5, End: 9}))
	assert.False(t, a.Overlaps(Span{Start: 6, End: 9}), "adjacent spans do not overlap")
	assert.True(t, a.Touches(Span{Start: 6, End: 9}))
	assert.True(t, a.Overlaps(Span{Start: 3, End: 3}))
	assert.False(t, a.Overlaps(Span{Start: 2, End: 2}), "insertion at the boundary")
	assert.False(t, a.Overlaps(Span{File: 1, Start: 2, End: 6}))
	assert.Equal(t, Span{Start: 1, End: 6}, a.Cover(Span{Start: 1, End: 3}))
	assert.True(t, a.Contains(Span{Start: 2, End: 6}))
}

func TestLoadStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cs")
	body := []byte("class A {}\n")
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, body...), 0o600))

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	require.NoError(t, err)

	f := fs.Get(id)
	assert.Equal(t, body, f.Content)
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.Equal(t, append([]byte{0xEF, 0xBB, 0xBF}, body...), f.WithBOM(f.Content))
	assert.Equal(t, "a.cs", f.FormatPath("relative", dir))
}

func TestGetLineAndIndentation(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.cs", []byte("a\r\n    b\n\tc"))
	f := fs.Get(id)

	assert.Equal(t, "a", f.GetLine(1))
	assert.Equal(t, "    b", f.GetLine(2))
	assert.Equal(t, "\tc", f.GetLine(3))
	assert.Equal(t, "", f.GetLine(4))
	assert.Equal(t, "    ", f.Indentation(7))
	assert.Equal(t, "\t", f.Indentation(10))

	again := fs.AddVirtual("x.cs", []byte("b"))
	latest, ok := fs.GetLatest("x.cs")
	require.True(t, ok)
	assert.Equal(t, again, latest)
	assert.NotEqual(t, id, again)
}
