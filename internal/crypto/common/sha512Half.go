package crypto

import "crypto/sha512"

// Sha512Half returns the first 32 bytes of the sha512 hash of the
// concatenated inputs.
func Sha512Half(msgs ...[]byte) [32]byte {
	h := sha512.New()
	for _, m := range msgs {
		h.Write(m)
	}
	sum := h.Sum(nil)
	var result [32]byte
	copy(result[:], sum[:32])
	return result
}
