package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/datastore/pkg/core"
)

// SerializerFor returns the codec registered for the extension of path.
// An empty extension selects JSON.
func SerializerFor[T any](path string, defaults func() T) (core.Codec[T], error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".json":
		return NewJSONSerializer(defaults), nil
	case ".yaml", ".yml":
		return NewYAMLSerializer(defaults), nil
	case ".toml":
		return NewTOMLSerializer(defaults), nil
	default:
		return nil, fmt.Errorf("no serializer for extension %q", ext)
	}
}

// SupportedExtensions lists the extensions understood by SerializerFor.
func SupportedExtensions() []string {
	return []string{".json", ".yaml", ".yml", ".toml"}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON documents.
// Decoding starts from the default value, so fields absent from the input
// keep their defaults and unknown fields are ignored.
type JSONSerializer[T any] struct {
	defaults func() T
}

// NewJSONSerializer creates a new JSON serializer. defaults may be nil, in
// which case the zero value of T is the default.
func NewJSONSerializer[T any](defaults func() T) *JSONSerializer[T] {
	return &JSONSerializer[T]{defaults: defaults}
}

// Default implements core.Codec.
func (s *JSONSerializer[T]) Default() T {
	if s.defaults == nil {
		var zero T
		return zero
	}
	return s.defaults()
}

// Encode implements core.Codec.
func (s *JSONSerializer[T]) Encode(v T) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode implements core.Codec.
func (s *JSONSerializer[T]) Decode(data []byte) (T, error) {
	var zero T

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return zero, fmt.Errorf("%w: empty json document", core.ErrMalformedData)
	}

	v := s.Default()
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return zero, fmt.Errorf("%w: invalid json: %w", core.ErrMalformedData, err)
	}

	if err := validate(v); err != nil {
		return zero, fmt.Errorf("%w: %w", core.ErrMalformedData, err)
	}
	return v, nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML documents.
// Values travel through the JSON representation of T, so JSON field names
// and (un)marshalers define the document shape in every format.
type YAMLSerializer[T any] struct {
	json *JSONSerializer[T]
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer[T any](defaults func() T) *YAMLSerializer[T] {
	return &YAMLSerializer[T]{json: NewJSONSerializer(defaults)}
}

// Default implements core.Codec.
func (s *YAMLSerializer[T]) Default() T {
	return s.json.Default()
}

// Encode implements core.Codec.
func (s *YAMLSerializer[T]) Encode(v T) ([]byte, error) {
	payload, err := toPayload(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode implements core.Codec.
func (s *YAMLSerializer[T]) Decode(data []byte) (T, error) {
	var zero T

	var payload map[string]interface{}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return zero, fmt.Errorf("%w: invalid yaml: %w", core.ErrMalformedData, err)
	}
	if payload == nil {
		return zero, fmt.Errorf("%w: empty yaml document", core.ErrMalformedData)
	}
	return fromPayload(s.json, payload)
}

// --- TOML Serializer ---

// TOMLSerializer handles reading and writing TOML documents.
// Like YAMLSerializer it bridges through the JSON representation of T.
type TOMLSerializer[T any] struct {
	json *JSONSerializer[T]
}

// NewTOMLSerializer creates a new TOML serializer.
func NewTOMLSerializer[T any](defaults func() T) *TOMLSerializer[T] {
	return &TOMLSerializer[T]{json: NewJSONSerializer(defaults)}
}

// Default implements core.Codec.
func (s *TOMLSerializer[T]) Default() T {
	return s.json.Default()
}

// Encode implements core.Codec.
func (s *TOMLSerializer[T]) Encode(v T) ([]byte, error) {
	payload, err := toPayload(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode implements core.Codec.
func (s *TOMLSerializer[T]) Decode(data []byte) (T, error) {
	var zero T

	var payload map[string]interface{}
	if err := toml.Unmarshal(data, &payload); err != nil {
		return zero, fmt.Errorf("%w: invalid toml: %w", core.ErrMalformedData, err)
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return fromPayload(s.json, payload)
}

// --- Helpers ---

var errNotObject = errors.New("document does not encode to an object")

// toPayload converts v to the generic map form of its JSON encoding.
func toPayload[T any](v T) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return nil, errNotObject
	}
	return payload, nil
}

// fromPayload decodes a generic map through the JSON serializer, so default
// filling and validation behave the same for every format.
func fromPayload[T any](s *JSONSerializer[T], payload map[string]interface{}) (T, error) {
	var zero T
	data, err := json.Marshal(dropUnknown(s, payload))
	if err != nil {
		return zero, fmt.Errorf("%w: unsupported value: %w", core.ErrMalformedData, err)
	}
	return s.Decode(data)
}

// dropUnknown removes keys that T does not encode and whose values have no
// JSON form (YAML .inf, maps with non-string keys). JSON ignores unknown keys
// anyway; this keeps them from failing the bridge.
func dropUnknown[T any](s *JSONSerializer[T], payload map[string]interface{}) map[string]interface{} {
	known, _ := toPayload(s.Default())

	out := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		if _, ok := known[key]; !ok {
			if _, err := json.Marshal(value); err != nil {
				continue
			}
		}
		out[key] = value
	}
	return out
}

func validate(v any) error {
	if val, ok := v.(core.Validator); ok {
		return val.Validate()
	}
	return nil
}

var (
	_ core.Codec[struct{}] = (*JSONSerializer[struct{}])(nil)
	_ core.Codec[struct{}] = (*YAMLSerializer[struct{}])(nil)
	_ core.Codec[struct{}] = (*TOMLSerializer[struct{}])(nil)
)
