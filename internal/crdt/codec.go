package crdt

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding so identical updates produce
// identical bytes on every peer
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("crdt: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1 << 24,
	}.DecMode()
	if err != nil {
		panic("crdt: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v with the package's deterministic CBOR mode
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeUpdate serializes an update for the wire
func EncodeUpdate(u Update) ([]byte, error) {
	data, err := encMode.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}
	return data, nil
}

// DecodeUpdate parses an update received from a peer
func DecodeUpdate(data []byte) (Update, error) {
	var u Update
	if err := decMode.Unmarshal(data, &u); err != nil {
		return Update{}, fmt.Errorf("failed to decode update: %w", err)
	}
	return u, nil
}
