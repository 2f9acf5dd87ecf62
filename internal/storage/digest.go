package storage

import (
	"fmt"
	"hash/crc32"
	"strings"
)

const digestAlgoCRC32 = "crc32"

// PieceDigest computes the digest string stored and exchanged for a piece,
// in "crc32:<hex>" form.
func PieceDigest(content []byte) string {
	return fmt.Sprintf("%s:%08x", digestAlgoCRC32, crc32.ChecksumIEEE(content))
}

// VerifyPieceDigest checks content against an expected digest string. An
// empty expected digest passes, digests with an unknown algorithm prefix
// fail.
func VerifyPieceDigest(expected string, content []byte) error {
	if expected == "" {
		return nil
	}
	algo, _, ok := strings.Cut(expected, ":")
	if !ok || algo != digestAlgoCRC32 {
		return fmt.Errorf("unsupported digest %q", expected)
	}
	if got := PieceDigest(content); got != expected {
		return fmt.Errorf("digest mismatch: expected %s, got %s", expected, got)
	}
	return nil
}
