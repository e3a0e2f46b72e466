package lockup

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/lockup/errors"
)

// Hex is a binary value that is presented as a lower case hex string in
// JSON, URLs and logs. Schedule identifiers use it.
type Hex []byte

// ParseHex decodes a hex string. Upper and lower case are accepted.
func ParseHex(s string) (Hex, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid hex %q", s)
	}
	return raw, nil
}

func (h Hex) String() string {
	return hex.EncodeToString(h)
}

// MarshalJSON encodes the value as a hex string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string.
func (h *Hex) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "hex value must be a string")
	}
	val, err := ParseHex(s)
	if err != nil {
		return err
	}
	*h = val
	return nil
}
