package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion_DefaultValues(t *testing.T) {
	assert.NotEmpty(t, Version)
	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

func TestColored(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc.1"
	assert.Equal(t, "1.2.3-rc.1", Colored(false))

	got := Colored(true)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "-rc.1")
	assert.NotEqual(t, Version, got)

	Version = "nightly"
	assert.Equal(t, "nightly", Colored(true))
}
