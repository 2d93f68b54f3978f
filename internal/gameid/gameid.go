// Package gameid mints race identifiers: UUIDv7 encoded as a
// 26-character Crockford base32 string, so log lines and result files
// sort by when the race started.
package gameid

import (
	cryptorand "crypto/rand"
	"fmt"
	"strings"
	"time"

	rand "math/rand/v2"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator mints race IDs. A nil rng draws the random bits from
// crypto/rand; a seeded rng makes the random tail reproducible for
// simulation runs.
type Generator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate mints a race ID from the system clock and crypto/rand.
func Generate() string {
	return New(nil).Generate()
}

func (g *Generator) Generate() string {
	return encodeBase32(g.uuidV7())
}

// uuidV7 lays out a 128-bit UUIDv7: a 48-bit millisecond timestamp,
// then version and variant bits over random data.
func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	now := time.Now().UnixMilli()
	id[0] = byte(now >> 40)
	id[1] = byte(now >> 32)
	id[2] = byte(now >> 24)
	id[3] = byte(now >> 16)
	id[4] = byte(now >> 8)
	id[5] = byte(now)

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rng.IntN(256))
		}
	} else {
		if _, err := cryptorand.Read(id[6:]); err != nil {
			panic("gameid: " + err.Error())
		}
	}

	// version 7, variant 10
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return id
}

// encodeBase32 packs the 128 bits into 26 base32 characters, five bits
// at a time, most significant first.
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that id is a well-formed race ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("race ID must be exactly 26 characters, got %d", len(id))
	}
	// The leading character carries the two overflow bits of the
	// 130-bit encoding, so it can never exceed '7'.
	if id[0] > '7' {
		return fmt.Errorf("race ID first character %q out of range", id[0])
	}
	for _, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("race ID contains invalid character %q", c)
		}
	}
	return nil
}
