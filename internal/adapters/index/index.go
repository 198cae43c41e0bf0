// Package index persists the mapping from as-written imports to the files
// they were resolved to.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"slices"
	"strconv"
	"sync"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.ResolutionIndex = (*Index)(nil)

// Index implements ports.ResolutionIndex as a JSON file in the workspace:
//
//	{"contracts/Main.sol": {"@oz/token/ERC20.sol": ".deps/npm/@oz@4.8.3/token/ERC20.sol"}}
type Index struct {
	workspace ports.Workspace
	logger    ports.Logger
	path      string

	mu      sync.Mutex
	entries map[string]map[string]string
	loaded  bool
	dirty   bool
	// version counts mutations; a save only clears dirty if nothing changed meanwhile.
	version uint64
	// loadGen invalidates loads that started before a Reload.
	loadGen uint64

	saveMu    sync.Mutex
	loadGroup singleflight.Group
}

// New creates an Index stored at the workspace-relative path p.
func New(workspace ports.Workspace, logger ports.Logger, p string) *Index {
	return &Index{
		workspace: workspace,
		logger:    logger,
		path:      p,
		entries:   make(map[string]map[string]string),
	}
}

// Load reads the persisted index once. Concurrent callers share one read,
// which outlives a caller that stops waiting.
// A missing file yields an empty index; a corrupt one is reported and reset.
func (x *Index) Load(ctx context.Context) error {
	x.mu.Lock()
	if x.loaded {
		x.mu.Unlock()
		return nil
	}
	gen := x.loadGen
	x.mu.Unlock()

	readCtx := context.WithoutCancel(ctx)
	ch := x.loadGroup.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		persisted, err := x.read(readCtx)
		if err != nil {
			return nil, err
		}

		x.mu.Lock()
		defer x.mu.Unlock()
		if x.loaded || x.loadGen != gen {
			return nil, nil
		}
		// Mappings recorded before the load completed take precedence.
		for src, imports := range x.entries {
			if persisted[src] == nil {
				persisted[src] = make(map[string]string, len(imports))
			}
			maps.Copy(persisted[src], imports)
		}
		x.entries = persisted
		x.loaded = true
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (x *Index) read(ctx context.Context) (map[string]map[string]string, error) {
	empty := make(map[string]map[string]string)

	ok, err := x.workspace.Exists(ctx, x.path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return empty, nil
	}

	content, err := x.workspace.ReadFile(ctx, x.path)
	if err != nil {
		return nil, err
	}

	var persisted map[string]map[string]string
	if err := json.Unmarshal([]byte(content), &persisted); err != nil {
		corrupt := zerr.With(domain.Because(domain.ErrIndexCorrupt, err), "path", x.path)
		x.logger.Warn(fmt.Sprintf("%v, starting with an empty index", corrupt))
		return empty, nil
	}
	if persisted == nil {
		return empty, nil
	}
	for src, imports := range persisted {
		if imports == nil {
			delete(persisted, src)
		}
	}
	return persisted, nil
}

// Save writes a complete snapshot when the index changed since the last
// save. Saves are serialized. An index that was never loaded is loaded
// first so persisted mappings are not dropped.
func (x *Index) Save(ctx context.Context) error {
	if err := x.Load(ctx); err != nil {
		return domain.Because(domain.ErrIndexSaveFailed, err)
	}

	x.saveMu.Lock()
	defer x.saveMu.Unlock()

	x.mu.Lock()
	if !x.dirty {
		x.mu.Unlock()
		return nil
	}
	snapshot := x.snapshotLocked()
	version := x.version
	x.mu.Unlock()

	data, err := Marshal(snapshot)
	if err != nil {
		return domain.Because(domain.ErrIndexSaveFailed, err)
	}
	if dir := path.Dir(x.path); dir != "." {
		if err := x.workspace.Mkdir(ctx, dir); err != nil {
			return domain.Because(domain.ErrIndexSaveFailed, err)
		}
	}
	if err := x.workspace.WriteFile(ctx, x.path, string(data)); err != nil {
		return domain.Because(domain.ErrIndexSaveFailed, err)
	}

	x.mu.Lock()
	if x.version == version {
		x.dirty = false
	}
	x.mu.Unlock()
	return nil
}

// Reload drops the in-memory state and loads the index again, typically
// after the workspace root changed.
func (x *Index) Reload(ctx context.Context) error {
	x.mu.Lock()
	x.entries = make(map[string]map[string]string)
	x.loaded = false
	x.dirty = false
	x.version++
	x.loadGen++
	x.mu.Unlock()

	return x.Load(ctx)
}

// RecordResolution stores original -> resolved for sourceFile. Identity
// mappings and unchanged mappings are ignored.
func (x *Index) RecordResolution(sourceFile, original, resolved string) {
	if original == resolved {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	imports := x.entries[sourceFile]
	if imports == nil {
		imports = make(map[string]string)
		x.entries[sourceFile] = imports
	}
	if imports[original] == resolved {
		return
	}
	imports[original] = resolved
	x.dirty = true
	x.version++
}

// Lookup returns the resolved path of original as imported by sourceFile.
func (x *Index) Lookup(sourceFile, original string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	resolved, ok := x.entries[sourceFile][original]
	return resolved, ok
}

// LookupAny returns the mapping of original recorded by the first source
// file in sorted order.
func (x *Index) LookupAny(original string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, src := range slices.Sorted(maps.Keys(x.entries)) {
		if resolved, ok := x.entries[src][original]; ok {
			return resolved, true
		}
	}
	return "", false
}

// Snapshot returns a deep copy of the index.
func (x *Index) Snapshot() map[string]map[string]string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.snapshotLocked()
}

func (x *Index) snapshotLocked() map[string]map[string]string {
	out := make(map[string]map[string]string, len(x.entries))
	for src, imports := range x.entries {
		out[src] = maps.Clone(imports)
	}
	return out
}

// Marshal renders an index snapshot as indented JSON with sorted keys.
func Marshal(entries map[string]map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
