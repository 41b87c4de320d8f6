package helper

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderNumber builds a human-readable order number from the current
// date plus a random suffix, e.g. ORD-20250830-7KQ2MX. The random tail makes
// collisions practically impossible without a central sequence; callers still
// retry on a unique-constraint violation.
func GenerateOrderNumber(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
