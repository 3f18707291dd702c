// Package uuid generates the time-ordered identifiers used as family invite
// codes. Codes sort by creation time, which keeps the invite table index
// append-only.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string.
//
// Layout (RFC 4122): 48 bits of Unix milliseconds, 4 version bits (0111),
// 12 random bits, 2 variant bits (10), 62 random bits.
func New() string {
	var code [16]byte

	timestamp := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(code[0:8], timestamp<<16)

	if _, err := rand.Read(code[6:]); err != nil {
		// Random source failure: a v4 from the library still makes a
		// usable code, just not a time-ordered one.
		return googleuuid.New().String()
	}

	code[6] = (code[6] & 0x0f) | 0x70
	code[8] = (code[8] & 0x3f) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(code[0:4]),
		binary.BigEndian.Uint16(code[4:6]),
		binary.BigEndian.Uint16(code[6:8]),
		binary.BigEndian.Uint16(code[8:10]),
		code[10:16],
	)
}

// IsValid reports whether s parses as a UUID. Used to reject malformed invite
// codes before touching the database.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
