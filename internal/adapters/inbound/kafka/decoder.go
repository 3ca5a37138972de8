package kafkain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ChangeNotice announces that a named store object was rewritten by someone
// other than this service.
type ChangeNotice struct {
	Resource  string    `json:"resource"`
	Source    string    `json:"source,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

func DecodeChangeNotice(b []byte) (ChangeNotice, error) {
	var n ChangeNotice

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&n); err != nil {
		return ChangeNotice{}, fmt.Errorf("json decode: %w", err)
	}
	if n.Resource == "" {
		return ChangeNotice{}, errors.New("notice missing resource")
	}
	return n, nil
}
