// Package id provides identifier-shaped strings drawn from a seeded stream.
// This is the canonical source for ID generation across the codebase.
package id

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/seedmock/internal/rng"
)

// UUID generates a UUID v4 shaped string from r.
// Returns a string in the format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
func UUID(r *rng.Rand) string {
	var u uuid.UUID
	copy(u[:], r.Bytes(16))
	// Set version (4) and variant bits per RFC 4122
	u[6] = (u[6] & 0x0f) | 0x40
	u[8] = (u[8] & 0x3f) | 0x80
	return u.String()
}

// Short generates a short hex ID (16 characters).
func Short(r *rng.Rand) string {
	return hex.EncodeToString(r.Bytes(8))
}

// --- ULID ---
// 26 characters: 10 chars timestamp + 16 chars randomness.

// ulidEncoding uses Crockford's Base32 (excludes I, L, O, U to avoid ambiguity)
const ulidEncoding = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDEpoch is the timestamp base used by ULIDAt when callers want
// index-ordered ULIDs that do not depend on the wall clock.
var ULIDEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ULID generates a ULID whose timestamp part encodes ms (Unix milliseconds)
// and whose random part is drawn from r.
func ULID(r *rng.Rand, ms int64) string {
	return encodeULID(ms, r.Bytes(10))
}

// ULIDAt generates a ULID whose timestamp is ULIDEpoch plus offset
// seconds, so ULIDs for increasing offsets sort in order.
func ULIDAt(r *rng.Rand, offset int) string {
	return ULID(r, ULIDEpoch.Add(time.Duration(offset)*time.Second).UnixMilli())
}

// encodeULID encodes a timestamp and 10 random bytes into a ULID string.
func encodeULID(ms int64, randomBytes []byte) string {
	ulid := make([]byte, 26)

	// Encode timestamp (first 10 characters, 48 bits)
	ulid[0] = ulidEncoding[(ms>>45)&0x1F]
	ulid[1] = ulidEncoding[(ms>>40)&0x1F]
	ulid[2] = ulidEncoding[(ms>>35)&0x1F]
	ulid[3] = ulidEncoding[(ms>>30)&0x1F]
	ulid[4] = ulidEncoding[(ms>>25)&0x1F]
	ulid[5] = ulidEncoding[(ms>>20)&0x1F]
	ulid[6] = ulidEncoding[(ms>>15)&0x1F]
	ulid[7] = ulidEncoding[(ms>>10)&0x1F]
	ulid[8] = ulidEncoding[(ms>>5)&0x1F]
	ulid[9] = ulidEncoding[ms&0x1F]

	// Encode randomness (last 16 characters, 80 bits)
	ulid[10] = ulidEncoding[(randomBytes[0]>>3)&0x1F]
	ulid[11] = ulidEncoding[((randomBytes[0]&0x07)<<2)|((randomBytes[1]>>6)&0x03)]
	ulid[12] = ulidEncoding[(randomBytes[1]>>1)&0x1F]
	ulid[13] = ulidEncoding[((randomBytes[1]&0x01)<<4)|((randomBytes[2]>>4)&0x0F)]
	ulid[14] = ulidEncoding[((randomBytes[2]&0x0F)<<1)|((randomBytes[3]>>7)&0x01)]
	ulid[15] = ulidEncoding[(randomBytes[3]>>2)&0x1F]
	ulid[16] = ulidEncoding[((randomBytes[3]&0x03)<<3)|((randomBytes[4]>>5)&0x07)]
	ulid[17] = ulidEncoding[randomBytes[4]&0x1F]
	ulid[18] = ulidEncoding[(randomBytes[5]>>3)&0x1F]
	ulid[19] = ulidEncoding[((randomBytes[5]&0x07)<<2)|((randomBytes[6]>>6)&0x03)]
	ulid[20] = ulidEncoding[(randomBytes[6]>>1)&0x1F]
	ulid[21] = ulidEncoding[((randomBytes[6]&0x01)<<4)|((randomBytes[7]>>4)&0x0F)]
	ulid[22] = ulidEncoding[((randomBytes[7]&0x0F)<<1)|((randomBytes[8]>>7)&0x01)]
	ulid[23] = ulidEncoding[(randomBytes[8]>>2)&0x1F]
	ulid[24] = ulidEncoding[((randomBytes[8]&0x03)<<3)|((randomBytes[9]>>5)&0x07)]
	ulid[25] = ulidEncoding[randomBytes[9]&0x1F]

	return string(ulid)
}

// IsValidULID checks if a string is a valid ULID.
func IsValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if decodeULIDChar(s[i]) < 0 {
			return false
		}
	}
	return true
}

// ULIDTime extracts the timestamp from a ULID.
func ULIDTime(ulid string) (time.Time, error) {
	if !IsValidULID(ulid) {
		return time.Time{}, fmt.Errorf("invalid ULID: %s", ulid)
	}

	var ms int64
	for i := 0; i < 10; i++ {
		ms = (ms << 5) | int64(decodeULIDChar(ulid[i]))
	}

	return time.UnixMilli(ms).UTC(), nil
}

// decodeULIDChar decodes a single ULID character to its value, or -1.
func decodeULIDChar(c byte) int {
	for i := 0; i < len(ulidEncoding); i++ {
		if ulidEncoding[i] == c {
			return i
		}
	}
	return -1
}

// nanoIDAlphabet is the URL-safe alphabet used by NanoID.
const nanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NanoIDLength is the conventional NanoID length.
const NanoIDLength = 21

// NanoID generates a URL-safe NanoID-shaped string of the given length.
// A non-positive length uses NanoIDLength.
func NanoID(r *rng.Rand, length int) string {
	if length <= 0 {
		length = NanoIDLength
	}
	return r.Chars(nanoIDAlphabet, length)
}

// Alphanumeric generates an alphanumeric string of the specified length.
// Uses uppercase, lowercase letters and digits.
func Alphanumeric(r *rng.Rand, length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return r.Chars(charset, length)
}
