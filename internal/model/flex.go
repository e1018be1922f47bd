package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// FlexString holds identifiers and numeric text that the dataset encodes
// inconsistently as JSON strings or numbers.
type FlexString string

// String returns the underlying text.
func (s FlexString) String() string {
	return string(s)
}

// Equal compares two values after trimming surrounding whitespace.
func (s FlexString) Equal(other FlexString) bool {
	return strings.TrimSpace(string(s)) == strings.TrimSpace(string(other))
}

// UnmarshalJSON accepts a string, a number, or null.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return eris.Wrap(err, "model: decode flex string")
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return eris.Wrapf(err, "model: decode flex value %s", data)
	}
	*s = FlexString(num.String())
	return nil
}

// MarshalJSON always encodes as a JSON string.
func (s FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}
