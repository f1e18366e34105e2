package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID generates a collision-resistant opaque record identifier:
// a base-36 millisecond timestamp prefix followed by a random base-36 suffix.
func NewID() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 36))
	for i := 0; i < 5; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			b.WriteByte(idAlphabet[time.Now().Nanosecond()%len(idAlphabet)])
			continue
		}
		b.WriteByte(idAlphabet[n.Int64()])
	}
	return b.String()
}

// GenerateReceiptNo builds a sequential human-readable receipt number of the
// form #YYYYMMDD-NNN. The sequence counts existing receipt numbers sharing
// today's prefix and resets at each day boundary. Callers are expected to be
// the single writer for the day; there is no reservation step.
func GenerateReceiptNo(existing []string, now time.Time) string {
	prefix := fmt.Sprintf("#%s", now.Format("20060102"))
	seq := 1
	for _, no := range existing {
		if strings.HasPrefix(no, prefix) {
			seq++
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
