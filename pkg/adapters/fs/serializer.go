package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/project"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads a project file from r.
	Parse(r io.Reader) (*project.File, error)
	// Serialize converts a project file to bytes.
	Serialize(f project.File) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON project files.
type JSONSerializer struct {
	// Strict enables strict number parsing (as json.Number) to avoid precision loss.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (*project.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f project.File
	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return &f, nil
}

func (s *JSONSerializer) Serialize(f project.File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// --- YAML Serializer ---

type YAMLSerializer struct {
	// Strict normalizes numbers to json.Number, matching the strict JSON serializer.
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*project.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f project.File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	for _, k := range core.Kinds() {
		entries := f.Entries(k)
		for i, p := range *entries {
			(*entries)[i] = core.Payload(plainMap(p))
		}
		if s.Strict {
			normalizeEntries(entries)
		}
	}
	return &f, nil
}

func (s *YAMLSerializer) Serialize(f project.File) ([]byte, error) {
	// json.Number is a string type; emit it as a YAML number.
	for _, k := range core.Kinds() {
		entries := f.Entries(k)
		out := make([]core.Payload, len(*entries))
		for i, p := range *entries {
			out[i] = denormalize(p).(core.Payload)
		}
		*entries = out
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Helpers ---

func normalizeEntries(entries *[]core.Payload) {
	for i, p := range *entries {
		(*entries)[i] = recursiveNormalize(p).(core.Payload)
	}
}

// plainMap converts nested mappings to map[string]any, the shape encoding/json
// produces. yaml.v3 decodes them with the type of the enclosing map.
func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(val any) any {
	switch v := val.(type) {
	case core.Payload:
		return plainMap(v)
	case map[string]any:
		return plainMap(v)
	case []any:
		l := make([]any, len(v))
		for i, item := range v {
			l[i] = plainValue(item)
		}
		return l
	default:
		return v
	}
}

// recursiveNormalize traverses the map/slice and converts numeric types to json.Number.
func recursiveNormalize(val any) any {
	switch v := val.(type) {
	case core.Payload:
		m := make(core.Payload, len(v))
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = recursiveNormalize(val)
		}
		return l
	case int:
		return json.Number(strconv.Itoa(v))
	case int64:
		return json.Number(strconv.FormatInt(v, 10))
	case uint64:
		return json.Number(strconv.FormatUint(v, 10))
	case float64:
		return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return v
	}
}

// denormalize turns json.Number values back into int64 or float64.
func denormalize(val any) any {
	switch v := val.(type) {
	case core.Payload:
		m := make(core.Payload, len(v))
		for k, val := range v {
			m[k] = denormalize(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = denormalize(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = denormalize(val)
		}
		return l
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return string(v)
	default:
		return v
	}
}
