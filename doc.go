// Package projtree manages the named-entity collections of a game project:
// scenes, external events, external layouts and extensions.
//
// Each collection is ordered and its names are unique. A Manager runs the
// editing operations on one collection: add, rename, delete, copy, cut,
// paste and reordering. Pasted and added entities get a fresh unique name
// derived from the original ("Scene1" pasted next to "Scene2" becomes
// "Scene3"). The clipboard keeps one entry per kind and can be shared
// between projects.
//
// Features:
//
//   - **Kind-scoped clipboard**: in memory, or as files under the system dir so it outlives the process.
//   - **Project file**: YAML or JSON, written atomically.
//   - **Git versioning**: every save becomes a Conventional Commit.
//   - **Watcher**: external edits of the project file are reported as events.
//   - **Typed payloads**: NewTypedCollection[T] decodes entity content into structs.
//
// Usage:
//
//	ws, err := projtree.Open(ctx, ".", projtree.WithLogger(logger))
//	scenes, err := ws.Manager(projtree.KindScene)
//
//	if err := scenes.Copy("Menu"); err != nil { ... }
//	name, ok := scenes.Paste(1)
//
//	err = ws.Save(ctx, projtree.ChangeReason(projtree.CommitTypeFeat, projtree.KindScene, "paste "+name))
package projtree
