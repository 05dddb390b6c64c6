package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "1.2.3"
	assert.Equal(t, "mdreveal 1.2.3", Generator())
	assert.Equal(t, "mdreveal/1.2.3", UserAgent())
}
