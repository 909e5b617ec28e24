package serializer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rezi"
	"github.com/dekarrin/zil/internal/world"
	"github.com/google/uuid"
)

// document is the on-disk save file: a small TOML header (format and type
// fields) wrapping a base64-encoded
// REZI binary blob of the actual snapshot, plus a fresh UUID stamped at
// save time to distinguish otherwise-identical saves.
type document struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
	ID     string `toml:"id"`
	Data   string `toml:"data"`
}

// Encode captures w's current state and renders it as a save document.
func Encode(w *world.World) ([]byte, error) {
	snap := Capture(w)
	raw := rezi.EncBinary(snap)

	doc := document{
		Format: "ZIL",
		Type:   "SAVE",
		ID:     uuid.New().String(),
		Data:   base64.StdEncoding.EncodeToString(raw),
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding save document: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a save document and applies it onto w, overwriting globals,
// object flags/properties/parents, and table contents in place.
func Decode(data []byte, w *world.World) error {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding save document: %w", err)
	}
	if strings.ToUpper(doc.Format) != "ZIL" {
		return fmt.Errorf("not a valid save file: missing 'format = \"ZIL\"' header")
	}
	if strings.ToUpper(doc.Type) != "SAVE" {
		return fmt.Errorf("not a valid save file: type is %q, not \"SAVE\"", doc.Type)
	}

	raw, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return fmt.Errorf("decoding save payload: %w", err)
	}

	var snap Snapshot
	n, err := rezi.DecBinary(raw, &snap)
	if err != nil {
		return fmt.Errorf("REZI decode: %w", err)
	}
	if n != len(raw) {
		return fmt.Errorf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(raw))
	}

	Apply(w, snap)
	return nil
}
