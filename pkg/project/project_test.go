package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/project"
)

func newScenes(t *testing.T, names ...string) (*project.Project, *project.Collection) {
	t.Helper()
	p := project.New("Platformer")
	scenes, err := p.Collection(core.KindScene)
	require.NoError(t, err)
	for i, n := range names {
		scenes.InsertNew(n, i)
	}
	return p, scenes
}

func TestCollection_Primitives(t *testing.T) {
	_, scenes := newScenes(t, "A", "B")

	assert.Equal(t, 2, scenes.Count())
	assert.True(t, scenes.HasNamed("A"))
	assert.False(t, scenes.HasNamed("a"))

	// Out-of-range inserts append.
	scenes.InsertNew("Z", 99)
	scenes.InsertNew("First", 0)
	assert.Equal(t, []string{"First", "A", "B", "Z"}, scenes.Names())

	scenes.Swap(0, 3)
	assert.Equal(t, []string{"Z", "A", "B", "First"}, scenes.Names())
	scenes.Swap(0, 10)
	assert.Equal(t, []string{"Z", "A", "B", "First"}, scenes.Names())

	e := scenes.Get("B")
	require.NotNil(t, e)
	scenes.SetName(e, "Boss")
	assert.Equal(t, "Boss", scenes.Name(e))

	scenes.Remove(e)
	assert.Equal(t, []string{"Z", "A", "First"}, scenes.Names())
	assert.Nil(t, scenes.At(5))
	assert.Nil(t, scenes.Get("Boss"))
}

func TestCollection_Serialization(t *testing.T) {
	_, scenes := newScenes(t, "Level")
	e := scenes.At(0)

	scenes.DeserializeInto(e, core.Payload{"name": "Other", "gravity": 9.8})
	assert.Equal(t, "Other", e.Name(), "deserialization overwrites the name")
	assert.Equal(t, core.Payload{"gravity": 9.8}, e.Payload())

	out := scenes.Serialize(e)
	assert.Equal(t, core.Payload{"name": "Other", "gravity": 9.8}, out)

	// The returned payload is a copy.
	out["gravity"] = 1.0
	assert.Equal(t, 9.8, e.Payload()["gravity"])
}

func TestProject_UnknownKind(t *testing.T) {
	p := project.New("x")
	_, err := p.Collection(core.Kind(42))
	assert.ErrorIs(t, err, core.ErrUnknownKind)
	_, err = p.Manager(core.KindCount, nil)
	assert.ErrorIs(t, err, core.ErrUnknownKind)
}

func TestManager_CopyPasteScenario(t *testing.T) {
	p, scenes := newScenes(t, "Scene1", "Scene2")
	scenes.DeserializeInto(scenes.At(0), core.Payload{"name": "Scene1", "width": 640})

	m, err := p.Manager(core.KindScene, core.NewMemoryClipboard())
	require.NoError(t, err)

	require.NoError(t, m.Copy("Scene1"))
	name, ok := m.Paste(1)
	require.True(t, ok)

	assert.Equal(t, "Scene3", name)
	assert.Equal(t, []string{"Scene1", "Scene3", "Scene2"}, scenes.Names())
	assert.Equal(t, scenes.Get("Scene1").Payload(), scenes.Get("Scene3").Payload())
}

func TestManager_RenameCollisionScenario(t *testing.T) {
	p, scenes := newScenes(t, "Scene1", "Scene2")
	m, err := p.Manager(core.KindScene, nil)
	require.NoError(t, err)

	err = m.Rename("Scene2", "Scene1")
	assert.ErrorIs(t, err, core.ErrNameCollision)
	assert.Equal(t, []string{"Scene1", "Scene2"}, scenes.Names())
}

func TestManager_SharedClipboardAcrossProjects(t *testing.T) {
	clip := core.NewMemoryClipboard()

	src, _ := newScenes(t, "Menu")
	dst, dstScenes := newScenes(t, "Menu")

	srcMgr, err := src.Manager(core.KindScene, clip)
	require.NoError(t, err)
	dstMgr, err := dst.Manager(core.KindScene, clip)
	require.NoError(t, err)

	require.NoError(t, srcMgr.Copy("Menu"))
	name, ok := dstMgr.Paste(0)
	require.True(t, ok)
	assert.Equal(t, "Menu2", name)
	assert.Equal(t, []string{"Menu2", "Menu"}, dstScenes.Names())
}

func TestProject_Events(t *testing.T) {
	p, scenes := newScenes(t)
	events, cancel := p.Subscribe(16)
	defer cancel()

	m, err := p.Manager(core.KindScene, nil)
	require.NoError(t, err)

	_, ok := m.Add(-1)
	require.True(t, ok)
	require.NoError(t, m.Rename("NewScene", "Intro"))
	m.Add(0)
	m.MoveDown(0)
	m.Delete("Intro")
	assert.Equal(t, []string{"NewScene"}, scenes.Names())

	var got []core.EventType
	for len(events) > 0 {
		e := <-events
		assert.Equal(t, core.KindScene, e.Kind)
		assert.NotZero(t, e.Timestamp)
		got = append(got, e.Type)
	}
	assert.Equal(t, []core.EventType{
		core.EventCreate,
		core.EventRename,
		core.EventCreate,
		core.EventMove,
		core.EventDelete,
	}, got)

	cancel()
	_, open := <-events
	assert.False(t, open)
	cancel() // idempotent
}

func TestProject_SnapshotRoundTrip(t *testing.T) {
	p := project.New("Shooter")
	scenes, _ := p.Collection(core.KindScene)
	ext, _ := p.Collection(core.KindExtension)

	scenes.InsertNew("Title", 0)
	scenes.InsertNew("Game", 1)
	scenes.DeserializeInto(scenes.At(1), core.Payload{"name": "Game", "layers": []any{"bg"}})
	ext.InsertNew("Physics", 0)

	file := p.Snapshot()
	assert.Equal(t, "Shooter", file.Name)
	require.Len(t, file.Scenes, 2)
	assert.Equal(t, "Game", file.Scenes[1]["name"])
	assert.Empty(t, file.ExternalEvents)

	restored, err := project.FromFile(file)
	require.NoError(t, err)
	assert.Equal(t, "Shooter", restored.Name())

	rScenes, _ := restored.Collection(core.KindScene)
	assert.Equal(t, []string{"Title", "Game"}, rScenes.Names())
	assert.Equal(t, core.Payload{"layers": []any{"bg"}}, rScenes.Get("Game").Payload())

	rExt, _ := restored.Collection(core.KindExtension)
	assert.Equal(t, []string{"Physics"}, rExt.Names())
}

func TestFromFile_Invalid(t *testing.T) {
	_, err := project.FromFile(project.File{
		Scenes: []core.Payload{{"name": "A"}, {"name": "A"}},
	})
	assert.ErrorIs(t, err, core.ErrNameCollision)

	_, err = project.FromFile(project.File{
		ExternalLayouts: []core.Payload{{"width": 1}},
	})
	assert.ErrorIs(t, err, core.ErrInvalidName)
}

func TestProject_State(t *testing.T) {
	p, _ := newScenes(t, "A", "B")
	_, cancel := p.Subscribe(1)
	defer cancel()

	state := p.State().(project.State)
	assert.Equal(t, "Platformer", state.Name)
	assert.Equal(t, 2, state.Counts["layout"])
	assert.Equal(t, 0, state.Counts["extension"])
	assert.Equal(t, 1, state.Subscribers)
}
