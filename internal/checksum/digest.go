package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex SHA-256 of an uploaded workbook. The digest is
// written to the audit log with the batch id so a re-uploaded file can be
// traced across batches.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
