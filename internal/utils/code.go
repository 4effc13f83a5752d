package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateConfirmationCode returns a random 6-character uppercase
// alphanumeric code. Collisions are possible but accepted; the code is a
// customer-facing lookup token, not a primary key.
func GenerateConfirmationCode() string {
	code := make([]byte, 6)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			code[i] = codeAlphabet[time.Now().UnixNano()%int64(len(codeAlphabet))]
			continue
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}

// GenerateBookingID returns a short time-derived id for chatbot bookings,
// e.g. BK483920. Not guaranteed globally unique; persistent records get
// their ids from the store instead.
func GenerateBookingID() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	return "BK" + millis[len(millis)-6:]
}
