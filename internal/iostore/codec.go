package iostore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amphdata/amprep/pkg/store"
)

// decodeSections splits the top level of the document into raw
// sections, keeping the key order of the file. The root must be a
// JSON object.
func decodeSections(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("root is not a JSON object")
	}

	var order []string
	sections := make(map[string]json.RawMessage)

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if _, exists := sections[key]; !exists {
			order = append(order, key)
		}
		sections[key] = raw
	}

	// consume the closing '}'
	if _, err = dec.Token(); err != nil {
		return nil, nil, err
	}
	return order, sections, nil
}

// decodeRegions reads the region section keeping its key order.
// Map keys are normalized to lowercase; last entry wins on duplicate
// keys, matching map semantics of the source document.
func decodeRegions(raw json.RawMessage) ([]string, map[string]store.RegionRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("region section is not a JSON object")
	}

	var order []string
	regions := make(map[string]store.RegionRecord)

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}
		key = store.Key(key)

		var rec store.RegionRecord
		if err = dec.Decode(&rec); err != nil {
			return nil, nil, err
		}
		if _, exists := regions[key]; !exists {
			order = append(order, key)
		}
		regions[key] = rec
	}

	if _, err = dec.Token(); err != nil {
		return nil, nil, err
	}
	return order, regions, nil
}

// encodeRegions writes the region section with keys in insertion
// order.
func encodeRegions(order []string, regions map[string]store.RegionRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		rec, err := json.Marshal(regions[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(rec)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
