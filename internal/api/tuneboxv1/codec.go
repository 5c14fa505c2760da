package tuneboxv1

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// CodecName is the Connect codec name, which selects application/json.
const CodecName = "json"

// Codec marshals tunebox messages as JSON for Connect.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string {
	return CodecName
}

// Marshal implements connect.Codec.
func (Codec) Marshal(message any) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return errors.Wrap(err, "failed to unmarshal message")
	}
	return nil
}
