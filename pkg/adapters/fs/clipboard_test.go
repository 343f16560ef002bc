package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/project"
)

func TestClipboardStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clipboard")
	clip := NewClipboardStore(dir, nil)

	_, ok := clip.Get(core.KindScene)
	assert.False(t, ok, "empty slot")

	entry := core.NewClipEntry(core.KindScene, "Menu", core.Payload{"name": "Menu", "width": 640})
	require.NoError(t, clip.Set(core.KindScene, entry))
	assert.FileExists(t, filepath.Join(dir, "layout.yaml"))

	// A second store over the same directory sees the slot.
	got, ok := NewClipboardStore(dir, nil).Get(core.KindScene)
	require.True(t, ok)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, "Menu", got.Name)
	assert.Equal(t, "layout", got.Kind)
	assert.EqualValues(t, 640, got.Payload["width"])
	assert.True(t, entry.CopiedAt.Equal(got.CopiedAt))

	// Slots are kind scoped.
	_, ok = clip.Get(core.KindExtension)
	assert.False(t, ok)

	assert.Error(t, clip.Set(core.Kind(99), entry))

	require.NoError(t, clip.Clear())
	_, ok = clip.Get(core.KindScene)
	assert.False(t, ok)
}

func TestClipboardStore_CorruptSlot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extension.yaml"), []byte("payload: [unclosed\n"), 0644))

	_, ok := NewClipboardStore(dir, nil).Get(core.KindExtension)
	assert.False(t, ok)
}

func TestClipboardStore_DrivesManager(t *testing.T) {
	clip := NewClipboardStore(t.TempDir(), nil)
	p := project.New("demo")
	scenes, err := p.Collection(core.KindScene)
	require.NoError(t, err)
	scenes.InsertNew("Scene1", 0)

	m, err := p.Manager(core.KindScene, clip)
	require.NoError(t, err)
	require.NoError(t, m.Copy("Scene1"))
	name, ok := m.Paste(1)
	require.True(t, ok)
	assert.Equal(t, "Scene2", name)
}

func TestClipboardStore_KeepsPayloadTypes(t *testing.T) {
	jsonSrc := `{"name":"P","scenes":[{"name":"S","seed":9007199254740993,"big":12345678901234567890,` +
		`"ratio":1.0,"tags":["a",2,null],"physics":{"gravity":9.8,"on":true}}]}`
	yamlSrc := "name: P\nscenes:\n  - name: S\n    width: 640\n    scale: 1.0\n    label: \"42\"\n" +
		"    big: 12345678901234567890\n    physics:\n      gravity: 10\n"

	tests := []struct {
		name string
		ser  Serializer
		src  string
	}{
		{"strict json", NewJSONSerializer(true), jsonSrc},
		{"json", NewJSONSerializer(false), jsonSrc},
		{"strict yaml", NewYAMLSerializer(true), yamlSrc},
		{"yaml", NewYAMLSerializer(false), yamlSrc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.ser.Parse(strings.NewReader(tt.src))
			require.NoError(t, err)
			p, err := project.FromFile(*f)
			require.NoError(t, err)
			scenes, err := p.Collection(core.KindScene)
			require.NoError(t, err)

			dir := t.TempDir()
			m, err := p.Manager(core.KindScene, NewClipboardStore(dir, nil))
			require.NoError(t, err)
			require.NoError(t, m.Copy("S"))

			// Paste from a fresh store, as a later CLI invocation would.
			other, err := p.Manager(core.KindScene, NewClipboardStore(dir, nil))
			require.NoError(t, err)
			name, ok := other.Paste(1)
			require.True(t, ok)
			require.Equal(t, "S2", name)

			assert.Equal(t, scenes.Get("S").Payload(), scenes.Get("S2").Payload())

			out, err := tt.ser.Serialize(p.Snapshot())
			require.NoError(t, err)
			assert.NotContains(t, string(out), `"9007199254740993"`)
			assert.NotContains(t, string(out), `"12345678901234567890"`)
		})
	}
}
