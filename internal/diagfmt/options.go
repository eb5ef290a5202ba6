package diagfmt

import "sharplint/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	}
	return "auto"
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8 // строк исходника перед строкой диагностики
	PathMode PathMode
	BaseDir  string // для PathModeRelative, пусто - cwd
	Max      int    // 0 - без лимита
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // обрезка вывода, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	Rules          []SarifRule
}

// SarifRule describes one reporting rule in the SARIF driver section.
type SarifRule struct {
	ID    string
	Title string
	Help  string
}

func formatPath(path string, mode PathMode, baseDir string) string {
	f := source.File{Path: path}
	return f.FormatPath(mode.String(), baseDir)
}
