package puzzle

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// DateFormat is the canonical calendar-date form used everywhere a date is
// serialized: puzzle seeds, store keys, and the sync wire format.
const DateFormat = "2006-01-02"

// DailySeed derives the puzzle seed for a calendar date. It hashes the
// ISO date concatenated with the secret and interprets the first eight hex
// characters of the digest as an unsigned integer.
//
// The secret is an operational constant, not a per-user value: rotating it
// invalidates every future puzzle, which is the intended kill switch if the
// generation scheme ever needs to change.
func DailySeed(date time.Time, secret string) int64 {
	sum := sha256.Sum256([]byte(date.Format(DateFormat) + secret))
	hexDigest := hex.EncodeToString(sum[:])

	// The first 8 hex chars fit in 32 bits, so this cannot fail.
	seed, _ := strconv.ParseInt(hexDigest[:8], 16, 64)
	return seed
}
