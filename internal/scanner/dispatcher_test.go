package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FamilyStructural, FamilyFor("server.py"))
	assert.Equal(t, FamilyStructural, FamilyFor("dir/SERVER.PY"))
	assert.Equal(t, FamilyPattern, FamilyFor("index.ts"))
	assert.Equal(t, FamilyPattern, FamilyFor("index.js"))
	assert.Equal(t, FamilyPattern, FamilyFor("index.mts"))
	assert.Equal(t, FamilyPattern, FamilyFor("index.mjs"))
	assert.Equal(t, FamilyNone, FamilyFor("README.md"))
	assert.Equal(t, FamilyNone, FamilyFor("noextension"))
}
