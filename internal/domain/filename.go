package domain

import (
	"fmt"
	"math/rand"
	"time"
)

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateFilename returns pinterest_<kind>_<unixMillis>_<token><ext>
func GenerateFilename(kind MediaKind, now time.Time) string {
	if kind != MediaImage {
		kind = MediaVideo
	}
	return fmt.Sprintf("pinterest_%s_%d_%s%s", kind, now.UnixMilli(), randomToken(6), kind.Extension())
}

func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
