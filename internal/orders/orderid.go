package orders

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const orderIDCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID returns a human-readable, collision-resistant id of the
// form ORD-<millis base36>-<5 random chars>.
func NewOrderID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "ORD-" + ts + "-" + randSuffix(5)
}

func randSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// degenerate but still unique enough combined with the timestamp
		for i := range b {
			b[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	for i := range b {
		b[i] = orderIDCharset[int(b[i])%len(orderIDCharset)]
	}
	return string(b)
}
