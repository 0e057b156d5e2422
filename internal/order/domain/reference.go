package domain

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReferenceNumber builds a customer-facing order reference of the form
// LEBO-<TIMESTAMP36>-<RANDOM5>. Time plus weak randomness does not
// guarantee global uniqueness; the orders table's unique index on
// reference_number catches the rare collision and surfaces it as
// ErrReferenceConflict.
func NewReferenceNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}

	return "LEBO-" + ts + "-" + string(suffix)
}
