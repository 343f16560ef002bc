package fs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/projtree/pkg/core"
)

// ClipboardStore implements core.Clipboard with one YAML file per kind, so the
// clipboard survives between CLI invocations and is shared across projects
// using the same directory.
type ClipboardStore struct {
	Dir    string
	logger *slog.Logger
}

// NewClipboardStore stores slots under dir.
func NewClipboardStore(dir string, logger *slog.Logger) *ClipboardStore {
	return &ClipboardStore{Dir: dir, logger: logger}
}

// ClipboardDir is the clipboard directory of a store.
func (s *Store) ClipboardDir() string {
	return filepath.Join(s.SystemPath(), "clipboard")
}

func (c *ClipboardStore) path(kind core.Kind) string {
	return filepath.Join(c.Dir, kind.Tag()+".yaml")
}

func (c *ClipboardStore) Set(kind core.Kind, entry core.ClipEntry) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", core.ErrUnknownKind, int(kind))
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create clipboard dir: %w", err)
	}
	data, err := encodeClip(entry)
	if err != nil {
		return fmt.Errorf("failed to encode clipboard entry: %w", err)
	}
	if _, err := writeAtomic(c.path(kind), data, 0644); err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Debug("clipboard set", "kind", kind, "name", entry.Name, "id", entry.ID)
	}
	return nil
}

// Get returns the slot of kind. Unreadable slots are logged and reported empty.
func (c *ClipboardStore) Get(kind core.Kind) (core.ClipEntry, bool) {
	if !kind.Valid() {
		return core.ClipEntry{}, false
	}
	data, err := os.ReadFile(c.path(kind))
	if err != nil {
		if !os.IsNotExist(err) && c.logger != nil {
			c.logger.Warn("clipboard read failed", "kind", kind, "error", err)
		}
		return core.ClipEntry{}, false
	}

	entry, err := decodeClip(data)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("clipboard entry corrupt", "kind", kind, "error", err)
		}
		return core.ClipEntry{}, false
	}
	if entry.Payload == nil {
		return core.ClipEntry{}, false
	}
	return entry, true
}

// Clear empties every slot.
func (c *ClipboardStore) Clear() error {
	err := os.RemoveAll(c.Dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ core.Clipboard = (*ClipboardStore)(nil)

// numberTag marks a json.Number so strict payloads keep their exact literal.
const numberTag = "!number"

// clipFile is the on-disk form of a clip entry. The payload is encoded node by
// node so a pasted payload has the same Go types as the copied one.
type clipFile struct {
	ID       string    `yaml:"id"`
	Kind     string    `yaml:"kind"`
	Name     string    `yaml:"name"`
	CopiedAt time.Time `yaml:"copiedAt"`
	Payload  *yaml.Node `yaml:"payload,omitempty"`
}

func encodeClip(entry core.ClipEntry) ([]byte, error) {
	f := clipFile{
		ID:       entry.ID,
		Kind:     entry.Kind,
		Name:     entry.Name,
		CopiedAt: entry.CopiedAt,
	}
	if entry.Payload != nil {
		payload, err := encodeMap(entry.Payload)
		if err != nil {
			return nil, err
		}
		f.Payload = payload
	}
	return yaml.Marshal(f)
}

func decodeClip(data []byte) (core.ClipEntry, error) {
	var f clipFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return core.ClipEntry{}, err
	}
	entry := core.ClipEntry{ID: f.ID, Kind: f.Kind, Name: f.Name, CopiedAt: f.CopiedAt}
	if f.Payload == nil {
		return entry, nil
	}
	val, err := decodeNode(f.Payload)
	if err != nil {
		return core.ClipEntry{}, err
	}
	m, ok := val.(map[string]any)
	if !ok {
		return core.ClipEntry{}, fmt.Errorf("payload is a %T, not a mapping", val)
	}
	entry.Payload = core.Payload(m)
	return entry, nil
}

func encodeMap(m map[string]any) (*yaml.Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		v, err := encodeValue(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, v)
	}
	return n, nil
}

func encodeValue(val any) (*yaml.Node, error) {
	switch v := val.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case core.Payload:
		return encodeMap(v)
	case map[string]any:
		return encodeMap(v)
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			c, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: numberTag, Value: string(v)}, nil
	case float64:
		// An explicit tag keeps integral floats from reading back as int.
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		l := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	}

	switch n.Tag {
	case numberTag:
		return json.Number(n.Value), nil
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f, nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
