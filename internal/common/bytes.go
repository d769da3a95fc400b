package common

// WipeBytes zeroes b in place. Callers use it to drop plaintext
// credentials from memory as soon as they are no longer needed.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
