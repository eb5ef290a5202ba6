package fuzztests

import (
	"path/filepath"
	"testing"

	"sharplint/internal/verify"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addScenarioSeeds(f)
	addSnippetSeeds(f)
}

// addScenarioSeeds добавляет входы и ожидаемые выходы сценариев правил.
func addScenarioSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "checks", "testdata", "*.txtar"))
	if err != nil {
		return
	}
	for _, path := range paths {
		sc, err := verify.LoadTxtar(path)
		if err != nil {
			continue
		}
		f.Add(clampSeed([]byte(sc.Input)))
		if sc.Fixed != nil {
			f.Add(clampSeed([]byte(*sc.Fixed)))
		}
	}
}

func addSnippetSeeds(f *testing.F) {
	// добавляем хотя бы минимальные примеры на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("class C { void M() { if (x) y(); } }\n"))
	f.Add([]byte("\xEF\xBB\xBFnamespace N;\r\npublic class A : B<int> { }\r\n"))
	f.Add([]byte("#if DEBUG\nclass D { }\n#endif\n"))
	f.Add([]byte("var s = $\"{x:N2} {{y}}\"; var v = @\"a\"\"b\";"))
	f.Add([]byte("class { /* unterminated"))
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
