package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrEmptyStore is wrapped by DecodeError when the input holds no document.
var ErrEmptyStore = errors.New("empty store")

// DecodeError reports store content that could not be decoded.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s store: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Codec converts between Data and its persisted text form.
type Codec interface {
	// Name identifies the format ("json" or "yaml").
	Name() string
	Decode(data []byte) (*Data, error)
	Encode(d *Data) ([]byte, error)
}

// CodecForPath picks the codec matching the store file extension.
// Unknown extensions use JSON.
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// JSONCodec stores Data as indented JSON. Decoding tolerates comments and
// trailing commas.
type JSONCodec struct{}

// Name returns "json".
func (JSONCodec) Name() string { return "json" }

// Decode parses and validates a JSON store document.
func (c JSONCodec) Decode(data []byte) (*Data, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Format: c.Name(), Err: ErrEmptyStore}
	}
	stripped := jsonc.ToJSON(data)

	var doc any
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, &DecodeError{Format: c.Name(), Err: fmt.Errorf("parse: %w", err)}
	}
	if errs := ValidateDocument(doc); len(errs) > 0 {
		return nil, &DecodeError{Format: c.Name(), Err: errors.Join(errs...)}
	}

	var d Data
	if err := json.Unmarshal(stripped, &d); err != nil {
		return nil, &DecodeError{Format: c.Name(), Err: fmt.Errorf("parse: %w", err)}
	}
	d.normalize()
	return &d, nil
}

// Encode writes d with 2-space indentation and a trailing newline.
func (JSONCodec) Encode(d *Data) ([]byte, error) {
	out := *d
	out.normalize()
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	return append(data, '\n'), nil
}

// YAMLCodec stores Data as YAML. Decoding converts the document to JSON
// and validates it like JSONCodec.
type YAMLCodec struct{}

// Name returns "yaml".
func (YAMLCodec) Name() string { return "yaml" }

// Decode parses and validates a YAML store document.
func (c YAMLCodec) Decode(data []byte) (*Data, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Format: c.Name(), Err: ErrEmptyStore}
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Format: c.Name(), Err: fmt.Errorf("parse: %w", err)}
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, &DecodeError{Format: c.Name(), Err: fmt.Errorf("convert: %w", err)}
	}

	d, err := JSONCodec{}.Decode(asJSON)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Format = c.Name()
		}
		return nil, err
	}
	return d, nil
}

// Encode writes d as YAML with 2-space indentation.
func (YAMLCodec) Encode(d *Data) ([]byte, error) {
	out := *d
	out.normalize()
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	return buf.Bytes(), nil
}
