package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// Token derives the instantiation token for a model name. The generator
// embeds the same value in the model description XML; an importer must
// present it at instantiation, and a mismatch fails construction.
func Token(name string) string {
	sum := sha256.Sum256([]byte("gofmi:" + name))
	return hex.EncodeToString(sum[:16])
}
