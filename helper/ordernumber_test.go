package helper

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2025, 8, 30, 14, 5, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20250830-[A-Z2-9]{6}$`)

	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber(now)
		require.Regexp(t, pattern, n)
		// ambiguous glyphs are excluded from the suffix
		suffix := n[len(n)-6:]
		assert.NotContains(t, suffix, "O")
		assert.NotContains(t, suffix, "I")
		assert.NotContains(t, suffix, "0")
		assert.NotContains(t, suffix, "1")
	}
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateOrderNumber(now)] = true
	}
	// 32^6 combinations; 50 draws colliding down to a handful would mean a
	// broken generator, not bad luck
	assert.Greater(t, len(seen), 45)
}

func TestGenerateOrderNumberDatePart(t *testing.T) {
	n := GenerateOrderNumber(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(n, "ORD-20240102-"))
}
