// Package persistence saves and loads a trained domain.Model as a binary
// artifact: a small fixed envelope (magic bytes + format version) followed
// by a gob-encoded payload. Modeled on the teacher's layered config
// loaders (internal/config/toml_loader.go, internal/config/merge.go) —
// "validate the envelope, then decode the body" plays the same role here
// that "parse the file, then merge in CLI overrides" plays there, just
// for a binary artifact instead of a TOML one.
//
// encoding/gob, not an ecosystem format, is used for the payload: none of
// the serialization libraries anywhere in the example pack (yaml.v3,
// go-toml/v2) target arbitrary Go struct graphs with unexported-free
// binary round-tripping, and the model's sparse recursive TreeNode graph
// is exactly gob's intended use case. See DESIGN.md.
package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/parabel-ml/parabel/domain"
)

var magic = [4]byte{'P', 'R', 'B', 'L'}

const formatVersion uint32 = 1

// Save writes m to w as a magic-header-prefixed gob stream.
func Save(w io.Writer, m *domain.Model) error {
	if m == nil {
		return domain.NewInvalidInputError("cannot save a nil model", nil)
	}

	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(m); err != nil {
		return domain.NewPersistenceError("failed to encode model", err)
	}

	if err := binary.Write(w, binary.BigEndian, magic); err != nil {
		return domain.NewPersistenceError("failed to write model header", err)
	}
	if err := binary.Write(w, binary.BigEndian, formatVersion); err != nil {
		return domain.NewPersistenceError("failed to write model header", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return domain.NewPersistenceError("failed to write model body", err)
	}
	return nil
}

// Load reads a model previously written by Save, rejecting unrecognized
// magic bytes or any format version other than the one this build writes.
func Load(r io.Reader) (*domain.Model, error) {
	var gotMagic [4]byte
	if err := binary.Read(r, binary.BigEndian, &gotMagic); err != nil {
		return nil, domain.NewPersistenceError("failed to read model header", err)
	}
	if gotMagic != magic {
		return nil, domain.NewPersistenceError(fmt.Sprintf("not a model file: bad magic %q", gotMagic), nil)
	}

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, domain.NewPersistenceError("failed to read model header", err)
	}
	if version != formatVersion {
		return nil, domain.NewPersistenceError(fmt.Sprintf("unsupported model format version %d", version), nil)
	}

	var m domain.Model
	if err := gob.NewDecoder(r).Decode(&m); err != nil {
		return nil, domain.NewPersistenceError("failed to decode model body", err)
	}
	return &m, nil
}
