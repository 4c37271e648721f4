package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlipNumber(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	slip := GenerateSlipNumber(SlipPrefixFee, now)
	assert.True(t, strings.HasPrefix(slip, "FEE-"))

	parts := strings.Split(slip, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[1], 6)
	assert.Len(t, parts[2], 4)

	slip = GenerateSlipNumber(SlipPrefixSalary, now)
	assert.True(t, strings.HasPrefix(slip, "SAL-"))
}

func TestGenerateSlipNumber_RandomSuffixVaries(t *testing.T) {
	now := time.Now()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateSlipNumber(SlipPrefixFee, now)] = true
	}
	// same timestamp, so distinct slips can only come from the random part
	assert.Greater(t, len(seen), 1)
}
