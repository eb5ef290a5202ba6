package driver

import (
	"sharplint/internal/parser"
	"sharplint/internal/source"
	"sharplint/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
}

// Parse reads and parses one file. A malformed file yields a
// *parser.ParseError together with the partially filled result.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	tree, err := parser.ParseFile(file, parser.Options{MaxErrors: maxDiagnostics})
	return &ParseResult{FileSet: fs, File: file, Tree: tree}, err
}
