package fs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/project"
)

func sampleFile() project.File {
	return project.File{
		Name: "Platformer",
		Scenes: []core.Payload{
			{"name": "Menu", "width": 640, "layers": []any{"bg", "ui"}},
			{"name": "Level1", "physics": map[string]any{"gravity": 9.8}},
		},
		Extensions: []core.Payload{{"name": "Dialogs"}},
	}
}

func TestSerializers_RoundTrip(t *testing.T) {
	for ext, s := range DefaultSerializers(false) {
		t.Run(ext, func(t *testing.T) {
			data, err := s.Serialize(sampleFile())
			require.NoError(t, err)

			f, err := s.Parse(bytes.NewReader(data))
			require.NoError(t, err)

			assert.Equal(t, "Platformer", f.Name)
			require.Len(t, f.Scenes, 2)
			assert.Equal(t, "Menu", f.Scenes[0]["name"])
			assert.Equal(t, []any{"bg", "ui"}, f.Scenes[0]["layers"])
			assert.Equal(t, "Dialogs", f.Extensions[0]["name"])
			assert.Empty(t, f.ExternalEvents)

			physics, ok := f.Scenes[1]["physics"].(map[string]any)
			require.True(t, ok, "nested maps decode as map[string]any")
			assert.EqualValues(t, 9.8, physics["gravity"])
		})
	}
}

func TestSerializers_OmitEmptyCollections(t *testing.T) {
	data, err := NewYAMLSerializer(false).Serialize(project.File{Name: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, "name: Empty\n", string(data))
}

func TestSerializers_Strict(t *testing.T) {
	big := "9007199254740993" // beyond float64 precision

	t.Run("json", func(t *testing.T) {
		src := `{"name":"P","scenes":[{"name":"S","seed":` + big + `}]}`
		f, err := NewJSONSerializer(true).Parse(strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, json.Number(big), f.Scenes[0]["seed"])
	})

	t.Run("yaml", func(t *testing.T) {
		src := "name: P\nscenes:\n  - name: S\n    seed: " + big + "\n    ratio: 1.5\n    physics:\n      gravity: 10\n"
		s := NewYAMLSerializer(true)
		f, err := s.Parse(strings.NewReader(src))
		require.NoError(t, err)
		assert.Equal(t, json.Number(big), f.Scenes[0]["seed"])
		assert.Equal(t, json.Number("1.5"), f.Scenes[0]["ratio"])
		assert.Equal(t, map[string]any{"gravity": json.Number("10")}, f.Scenes[0]["physics"])

		// Numbers are written back unquoted.
		out, err := s.Serialize(*f)
		require.NoError(t, err)
		assert.Contains(t, string(out), "seed: "+big)
		assert.NotContains(t, string(out), `"`+big+`"`)
	})
}

func TestSerializers_Invalid(t *testing.T) {
	_, err := NewJSONSerializer(false).Parse(strings.NewReader("{"))
	assert.Error(t, err)
	_, err = NewYAMLSerializer(false).Parse(strings.NewReader("scenes: [\n"))
	assert.Error(t, err)
}
