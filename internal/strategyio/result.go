package strategyio

import (
	"encoding/json"
	"fmt"

	"daybt/internal/domain"
)

// EncodeResult renders a ResultDocument as indented JSON using the domain
// type's own json tags, the shape downstream consumers (dashboards, the
// TUI viewer) expect.
func EncodeResult(doc domain.ResultDocument) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result document: %w", err)
	}
	return out, nil
}

// DecodeResult parses a previously encoded ResultDocument, as read back by
// the TUI viewer.
func DecodeResult(data []byte) (domain.ResultDocument, error) {
	var doc domain.ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.ResultDocument{}, fmt.Errorf("decoding result document: %w", err)
	}
	return doc, nil
}
