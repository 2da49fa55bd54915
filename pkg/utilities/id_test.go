package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Unique(t *testing.T) {
	g := NewIDGenerator(3)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := g.Next()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIDGenerator_BadNodeFallsBackToKSUID(t *testing.T) {
	g := NewIDGenerator(-1)
	id := g.Next()
	assert.Len(t, id, 27)
}

