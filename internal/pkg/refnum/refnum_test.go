package refnum

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNext_Format(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorAt(func() time.Time { return fixed })

	ref := g.Next(PrefixBooking)

	parts := strings.Split(ref, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "BK", parts[0])
	assert.Equal(t, "1772366400000", parts[1])
	assert.Len(t, parts[2], 4)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestNext_Unique(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := g.Next(PrefixOrder)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
