package util

import (
	"math/rand"
	"time"
)

var seededRand = NewSeededRand(time.Now().UnixNano())

func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

const lowerLetters = "abcdefghijklmnopqrstuvwxyz"

// RandomString returns l random lowercase letters drawn from r,
// or from a process-wide source when r is nil.
func RandomString(r *rand.Rand, l int) string {
	if r == nil {
		r = seededRand
	}
	b := make([]byte, l)
	for i := range b {
		b[i] = lowerLetters[r.Intn(len(lowerLetters))]
	}
	return string(b)
}
