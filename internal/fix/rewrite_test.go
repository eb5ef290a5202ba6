package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/fix"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// wrapIf braces the first if statement of src.
func wrapIf(t *testing.T, src string) (string, error) {
	t.Helper()
	tree := parse(t, src)
	stmt := kindOf(t, tree, syntax.KindIfStatement)
	kids := tree.Children(stmt)
	header := tok(t, tree, ")", 1)
	edits, err := fix.WrapInBlock(tree, kids[0], header, kids[4])
	if err != nil {
		return "", err
	}
	next, err := tree.Replace(edits)
	require.NoError(t, err)
	return next.Render(), nil
}

func TestWrapInBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "crlf",
			in:   "class C\r\n{\r\n    void M()\r\n    {\r\n        if (x) y();\r\n    }\r\n}\r\n",
			want: "class C\r\n{\r\n    void M()\r\n    {\r\n        if (x)\r\n        {\r\n            y();\r\n        }\r\n    }\r\n}\r\n",
		},
		{
			name: "header comment",
			in:   "class C\n{\n    void M()\n    {\n        if (x) // why\n            y();\n    }\n}\n",
			want: "class C\n{\n    void M()\n    {\n        if (x) // why\n        {\n            y();\n        }\n    }\n}\n",
		},
		{
			name: "blank line before body",
			in:   "class C\n{\n    void M()\n    {\n        if (x)\n\n            y();\n    }\n}\n",
			want: "class C\n{\n    void M()\n    {\n        if (x)\n        {\n            y();\n        }\n    }\n}\n",
		},
		{
			name: "trailing comment stays on the statement",
			in:   "class C\n{\n    void M()\n    {\n        if (x) y(); // done\n    }\n}\n",
			want: "class C\n{\n    void M()\n    {\n        if (x)\n        {\n            y(); // done\n        }\n    }\n}\n",
		},
		{
			name: "preprocessor line",
			in:   "class C\n{\n    void M()\n    {\n        if (x)\n#if DEBUG\n            y();\n#endif\n    }\n}\n",
			want: "class C\n{\n    void M()\n    {\n        if (x)\n        {\n#if DEBUG\n            y();\n        }\n#endif\n    }\n}\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := wrapIf(t, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrapInBlockRejectsBlocks(t *testing.T) {
	_, err := wrapIf(t, "class C { void M() { if (x) { y(); } } }")
	require.ErrorIs(t, err, fix.ErrNotApplicable)
}

// makePublic runs ReplaceAccessibility on the first method of src.
func makePublic(t *testing.T, src string) (string, error) {
	t.Helper()
	tree := parse(t, src)
	method := kindOf(t, tree, syntax.KindMethodDeclaration)
	edits, err := fix.ReplaceAccessibility(tree, method, token.KwPublic)
	if err != nil {
		return "", err
	}
	next, err := tree.Replace(edits)
	require.NoError(t, err)
	return next.Render(), nil
}

func TestReplaceAccessibility(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single", "class C { internal void M() { } }", "class C { public void M() { } }"},
		{"pair", "class C { internal protected void M() { } }", "class C { public void M() { } }"},
		{"keeps others", "class C { static private async void M() { } }", "class C { static public async void M() { } }"},
		{"keeps comment", "class C { private /* x */ static void M() { } }", "class C { public /* x */ static void M() { } }"},
		{"insert before modifiers", "class C { static void M() { } }", "class C { public static void M() { } }"},
		{"insert after attributes", "class C\n{\n    [Test]\n    void M() { }\n}", "class C\n{\n    [Test]\n    public void M() { }\n}"},
		{
			"comment of removed modifier",
			"class C\n{\n    protected\n    // keep\n    internal static void M() { }\n}",
			"class C\n{\n    public\n    // keep\n    static void M() { }\n}",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := makePublic(t, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReplaceAccessibilityAlreadyPublic(t *testing.T) {
	_, err := makePublic(t, "class C { public static void M() { } }")
	require.ErrorIs(t, err, fix.ErrNotApplicable)
}
