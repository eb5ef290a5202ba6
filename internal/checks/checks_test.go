package checks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/analysis"
	"sharplint/internal/checks"
	"sharplint/internal/fix"
	"sharplint/internal/parser"
	"sharplint/internal/semantic"
	"sharplint/internal/verify"
)

func harness() verify.Harness {
	return verify.Harness{Registry: checks.Registry(), Fixes: checks.Fixes()}
}

// methodBody кладёт строки тела в метод на 12 пробелов, как в эталонных примерах.
func methodBody(body string) string {
	return `
using System;
using System.Text;

namespace ConsoleApplication1
{
    class MyClass
    {   
        void Method()
        {
` + body + `        }
    }
}`
}

func TestIfWithoutBracesSameLine(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name:  "if-same-line",
		Input: methodBody("            if(true) Console.WriteLine(\"true\");\n"),
		Want:  verify.Want("IfStatementWithoutBraces 11:13"),
		Fixed: verify.Text(methodBody(`            if(true)
            {
                Console.WriteLine("true");
            }
`)),
	})
}

func TestIfWithoutBracesKeepsIntermediateComment(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name:  "if-comment",
		Input: methodBody("            if(true) /* comments */ Console.WriteLine(\"true\");\n"),
		Want:  verify.Want("IfStatementWithoutBraces 11:13"),
		Fixed: verify.Text(methodBody(`            if(true) /* comments */
            {
                Console.WriteLine("true");
            }
`)),
	})
}

func TestIfWithoutBracesNextLine(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name: "if-next-line",
		Input: methodBody(`            if(true)
                Console.WriteLine("true");
`),
		Want: verify.Want("IfStatementWithoutBraces 11:13"),
		Fixed: verify.Text(methodBody(`            if(true)
            {
                Console.WriteLine("true");
            }
`)),
	})
}

func TestIfWithBracesIsQuiet(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name: "if-braced",
		Input: methodBody(`            if(true)
            {
                Console.WriteLine("true");
            }
            else 
            {
                Console.WriteLine("false");
            }
`),
	})
}

func TestElseWithoutBraces(t *testing.T) {
	braced := `            if(true)
            {
                Console.WriteLine("true");
            }
`
	want := methodBody(braced + `            else
            {
                Console.WriteLine("false");
            }
`)
	cases := map[string]string{
		"same-line": braced + "            else Console.WriteLine(\"false\");\n",
		"next-line": braced + "            else \n                Console.WriteLine(\"false\");\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			verify.Run(t, harness(), verify.Scenario{
				Name:  name,
				Input: methodBody(body),
				Want:  verify.Want("IfStatementWithoutBraces 15:13"),
				Fixed: verify.Text(want),
			})
		})
	}
}

func TestIfAndElseFixedInOneBatch(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name: "if-else",
		Input: methodBody(`            if(true)
                Console.WriteLine("true");
            else
                Console.WriteLine("false");
`),
		Want: verify.Want("IfStatementWithoutBraces 11:13", "IfStatementWithoutBraces 13:13"),
		Fixed: verify.Text(methodBody(`            if(true)
            {
                Console.WriteLine("true");
            }
            else
            {
                Console.WriteLine("false");
            }
`)),
	})
}

func TestElseIfIsNotReported(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name: "else-if",
		Input: methodBody(`            if(a)
            {
                A();
            }
            else if(b)
            {
                B();
            }
`),
	})
}

func TestLoopsWithoutBraces(t *testing.T) {
	input := `class C
{
    void M()
    {
        while (Next())
            Step();
        for (int i = 0; i < 3; i++) Step();
        foreach (var x in Items()) Step();
        do Step(); while (Next());
    }
}
`
	fixed := `class C
{
    void M()
    {
        while (Next())
        {
            Step();
        }
        for (int i = 0; i < 3; i++)
        {
            Step();
        }
        foreach (var x in Items())
        {
            Step();
        }
        do
        {
            Step();
        } while (Next());
    }
}
`
	verify.Run(t, harness(), verify.Scenario{
		Name:  "loops",
		Input: input,
		Want: verify.Want(
			"LoopStatementWithoutBraces 5:9",
			"LoopStatementWithoutBraces 7:9",
			"LoopStatementWithoutBraces 8:9",
			"LoopStatementWithoutBraces 9:9",
		),
		Fixed: verify.Text(fixed),
	})
}

func TestLoopMessageNamesTheLoop(t *testing.T) {
	tree, err := parser.ParseText("loop.cs", "class C { void M() { foreach (var x in xs) Use(x); } }")
	require.NoError(t, err)
	diags := analysis.ListDiagnostics(tree, checks.Registry(), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "A foreach loop should be written using braces", diags[0].Message)
}

func TestMultiLineStatementKeepsRelativeIndentation(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name: "multi-line",
		Input: `class C
{
    void M()
    {
        if (ok)
          Call(a,
               b);
    }
}
`,
		Want: verify.Want("IfStatementWithoutBraces 5:9"),
		Fixed: verify.Text(`class C
{
    void M()
    {
        if (ok)
        {
            Call(a,
                 b);
        }
    }
}
`),
	})
}

func TestNestedIfsConverge(t *testing.T) {
	got, err := verify.Converges(harness(), `class C
{
    void M()
    {
        if (a)
            if (b)
                Call();
    }
}
`, 5)
	require.NoError(t, err)
	assert.Equal(t, `class C
{
    void M()
    {
        if (a)
        {
            if (b)
            {
                Call();
            }
        }
    }
}
`, got)
}

func testClass(attr, decl string) string {
	return `
using System;
using System.Text;

namespace ConsoleApplication1
{
    [TestFixture]
    public class MyClass
    {   
        ` + attr + `
        ` + decl + `
        {
        }
    }
}`
}

func TestTestMethodWithoutPublicModifier(t *testing.T) {
	cases := []struct {
		name  string
		attr  string
		decl  string
		want  []verify.Expectation
		fixed string
	}{
		{"internal", "[Test]", "internal void Method()", verify.Want("TestMethodWithoutPublicModifier 11:9"), "public void Method()"},
		{"internal-virtual", "[TestMethod]", "internal virtual void Method()", verify.Want("TestMethodWithoutPublicModifier 11:9"), "public virtual void Method()"},
		{"protected-internal", "[Fact]", "protected internal virtual void Method()", verify.Want("TestMethodWithoutPublicModifier 11:9"), "public virtual void Method()"},
		{"private-static", "[Theory]", "private static void Method()", verify.Want("TestMethodWithoutPublicModifier 11:9"), "public static void Method()"},
		{"no-modifier", "[Test]", "void Method()", verify.Want("TestMethodWithoutPublicModifier 11:14"), "public void Method()"},
		{"only-virtual", "[Test]", "virtual void Method()", verify.Want("TestMethodWithoutPublicModifier 11:22"), "public virtual void Method()"},
		{"attribute-suffix", "[TestCaseAttribute]", "internal void Method()", verify.Want("TestMethodWithoutPublicModifier 11:9"), "public void Method()"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verify.Run(t, harness(), verify.Scenario{
				Name:  tc.name,
				Input: testClass(tc.attr, tc.decl),
				Want:  tc.want,
				Fixed: verify.Text(testClass(tc.attr, tc.fixed)),
			})
		})
	}
}

func TestPublicTestMethodIsQuiet(t *testing.T) {
	for _, attr := range []string{"[Test]", "[TestMethod]", "[Fact]"} {
		verify.Run(t, harness(), verify.Scenario{Name: attr, Input: testClass(attr, "public void Method()")})
	}
	verify.Run(t, harness(), verify.Scenario{Name: "no-attribute", Input: testClass("[Obsolete]", "internal void Method()")})
}

func TestRemoveTestSuffix(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name:  "suffix",
		Input: testClass("[Test]", "public void MethodTest()"),
		Want:  verify.Want("RemoveTestSuffix 11:21"),
		Fixed: verify.Text(testClass("[Test]", "public void Method()")),
	})
	verify.Run(t, harness(), verify.Scenario{
		Name:  "suffix-lower",
		Input: testClass("[Test]", "public void Methodtest()"),
		Want:  verify.Want("RemoveTestSuffix 11:21"),
		Fixed: verify.Text(testClass("[Test]", "public void Method()")),
	})
	// окончание сравнивается по рунам: U+017F складывается в 's'
	verify.Run(t, harness(), verify.Scenario{
		Name:  "suffix-folded-rune",
		Input: testClass("[Test]", "public void MethodTe\u017Ft()"),
		Want:  verify.Want("RemoveTestSuffix 11:21"),
		Fixed: verify.Text(testClass("[Test]", "public void Method()")),
	})
	verify.Run(t, harness(), verify.Scenario{
		Name:  "multibyte-tail",
		Input: testClass("[Test]", "public void Caf\u00E9()"),
	})
	verify.Run(t, harness(), verify.Scenario{
		Name:  "suffix-without-attribute",
		Input: testClass("[Obsolete]", "public void MethodTest()"),
	})
}

func TestTestMethodRulesCombine(t *testing.T) {
	verify.Run(t, harness(), verify.Scenario{
		Name:  "internal-suffix",
		Input: testClass("[Test]", "internal void MethodTest()"),
		Want:  verify.Want("TestMethodWithoutPublicModifier 11:9", "RemoveTestSuffix 11:23"),
		Fixed: verify.Text(testClass("[Test]", "public void Method()")),
	})
}

func TestCustomTestAttributes(t *testing.T) {
	reg := analysis.MustRegistry(checks.Rules(checks.Options{TestAttributes: []string{"Spec"}})...)
	h := verify.Harness{Registry: reg, Fixes: checks.Fixes()}
	verify.Run(t, h, verify.Scenario{
		Name:  "custom",
		Input: testClass("[Spec]", "internal void Method()"),
		Want:  verify.Want("TestMethodWithoutPublicModifier 11:9"),
	})
	verify.Run(t, h, verify.Scenario{Name: "default-off", Input: testClass("[Test]", "internal void Method()")})
}

func TestAsyncMethodWithoutAsyncSuffix(t *testing.T) {
	input := `class Worker
{
    async void Fire() { }
    public Task Load() => Task.CompletedTask;
    public async Task<int> CountAsync() { return 1; }
    public static async Task Main() { }
    public override async Task Run() { }
    public void Sync() { }
}
`
	fixed := `class Worker
{
    async void FireAsync() { }
    public Task LoadAsync() => Task.CompletedTask;
    public async Task<int> CountAsync() { return 1; }
    public static async Task Main() { }
    public override async Task Run() { }
    public void Sync() { }
}
`
	verify.Run(t, harness(), verify.Scenario{
		Name:  "async",
		Input: input,
		Want: verify.Want(
			"AsyncMethodWithoutAsyncSuffix 3:16",
			"AsyncMethodWithoutAsyncSuffix 4:17",
		),
		Fixed: verify.Text(fixed),
	})
}

func TestCatchNullReferenceException(t *testing.T) {
	input := `class MyNre : NullReferenceException { }
class C
{
    void M()
    {
        try { Run(); }
        catch (System.NullReferenceException) { }
        catch (MyNre e) { }
        catch (ArgumentException e) { }
        catch { }
    }
}
`
	verify.Run(t, harness(), verify.Scenario{
		Name:  "catch",
		Input: input,
		Want: verify.Want(
			"CatchNullReferenceException 7:16",
			"CatchNullReferenceException 8:16",
		),
		Fixed: verify.Text(input),
	})
}

func TestStaleDiagnosticIsNotApplicable(t *testing.T) {
	src := methodBody("            if(true) Console.WriteLine(\"true\");\n")
	first, err := parser.ParseText("a.cs", src)
	require.NoError(t, err)
	diags := analysis.ListDiagnostics(first, checks.Registry(), semantic.NewSyntactic())
	require.Len(t, diags, 1)

	second, _, err := fix.Apply(first, diags, checks.Fixes())
	require.NoError(t, err)

	p, ok := checks.Fixes().Lookup(checks.IfStatementWithoutBraces)
	require.True(t, ok)
	_, err = p.ComputeFix(diags[0], second)
	require.ErrorIs(t, err, fix.ErrNotApplicable)

	again, res, err := fix.Apply(second, diags, checks.Fixes())
	require.NoError(t, err)
	assert.Same(t, second, again)
	assert.Empty(t, res.Applied)
	require.Len(t, res.Skipped, 1)
	assert.False(t, res.Changed())
	assert.Equal(t, fix.RenderText(second), fix.RenderText(again))
}

func TestScenarioArchives(t *testing.T) {
	verify.RunTxtar(t, harness(), "testdata/*.txtar")
}

func TestRegistryAndFixesAgree(t *testing.T) {
	reg := checks.Registry()
	assert.Equal(t, 6, reg.Len())
	for _, id := range checks.Fixes().RuleIDs() {
		_, ok := reg.Lookup(id)
		assert.True(t, ok, id)
	}
	assert.False(t, checks.Fixes().Has(checks.CatchNullReferenceException))
}

func TestShippedFixesSelectedByDefault(t *testing.T) {
	tree, err := parser.ParseText("w.cs", "class Worker\n{\n    async void Fire() { if (a) x(); }\n}\n")
	require.NoError(t, err)
	diags := analysis.ListDiagnostics(tree, checks.Registry(), semantic.NewSyntactic())
	require.Len(t, diags, 2)

	got, skipped := fix.Select(diags, checks.Fixes(), fix.SelectOptions{})
	assert.Len(t, got, 2)
	assert.Empty(t, skipped)

	got, _ = fix.Select(diags, checks.Fixes(), fix.SelectOptions{Mode: fix.ApplyModeRule, RuleID: checks.AsyncMethodWithoutAsyncSuffix})
	require.Len(t, got, 1)
	assert.Equal(t, checks.AsyncMethodWithoutAsyncSuffix, got[0].RuleID)
}

func TestConflictingRenamesConverge(t *testing.T) {
	got, err := verify.Converges(harness(), `class Suite
{
    [Fact]
    public async Task LoadTest() { }
}
`, 5)
	require.NoError(t, err)
	assert.Contains(t, got, "public async Task LoadAsync() { }")
}
