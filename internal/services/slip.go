package services

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Slip number prefixes
const (
	SlipPrefixFee    = "FEE"
	SlipPrefixSalary = "SAL"
)

// GenerateSlipNumber builds a human-facing receipt identifier:
// prefix, the last six digits of the unix-millisecond clock, and a
// four-digit random suffix. Uniqueness is best-effort only; the internal
// record key is always the database id, never the slip.
func GenerateSlipNumber(prefix string, now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	random := 1000 + rand.IntN(9000)
	return fmt.Sprintf("%s-%s-%d", prefix, millis, random)
}
