// Package gameid generates sortable identifiers for games: a UUIDv7 layout
// (48-bit millisecond timestamp, version and variant bits, random tail)
// rendered as 26 characters of Crockford base32, TypeID style.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in a game ID
const Length = 26

// RandSource supplies the random tail. *rand.Rand from math/rand/v2
// satisfies it; nil means crypto/rand.
type RandSource interface {
	IntN(n int) int
}

// Generator creates game IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rng   RandSource
}

// NewGenerator creates a generator. A nil clock uses the wall clock.
func NewGenerator(clock quartz.Clock, rng RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns a new ID. IDs from later milliseconds sort after
// earlier ones.
func (g *Generator) Generate() string {
	var id [16]byte

	ms := g.clock.Now("gameid").UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rng.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes the 128 id bits behind two zero bits as 26 five-bit digits
func encode(id [16]byte) string {
	out := make([]byte, Length)
	for i := range Length {
		var v byte
		for k := range 5 {
			v <<= 1
			if b := i*5 + k - 2; b >= 0 {
				v |= (id[b/8] >> (7 - b%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters whose first digit leaves
// room for exactly 128 bits.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, r := range id {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %c at position %d", r, i)
		}
	}
	return nil
}
