// Package bundler resolves the imports of an entry before handing the
// flattened sources to a compiler.
package bundler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/engine/graph"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Bundler)(nil)

// Bundler decorates a compiler. Each request for an entry resolves its
// imports into a bundle, commits the resolutions to the index and compiles
// the bundle. When several requests for one entry overlap, only the most
// recent one reaches the index and the compiler.
type Bundler struct {
	next      ports.Compiler
	builder   *graph.Builder
	project   ports.ProjectLoader
	index     ports.ResolutionIndex
	workspace ports.Workspace
	cfg       *domain.Config
	logger    ports.Logger

	mu          sync.Mutex
	generations map[string]uint64
	cancels     map[string]context.CancelFunc
}

// New creates a Bundler that compiles with next.
func New(
	next ports.Compiler,
	builder *graph.Builder,
	project ports.ProjectLoader,
	index ports.ResolutionIndex,
	workspace ports.Workspace,
	cfg *domain.Config,
	logger ports.Logger,
) *Bundler {
	return &Bundler{
		next:        next,
		builder:     builder,
		project:     project,
		index:       index,
		workspace:   workspace,
		cfg:         cfg,
		logger:      logger,
		generations: make(map[string]uint64),
		cancels:     make(map[string]context.CancelFunc),
	}
}

// Compile implements ports.Compiler. The entry content is taken from sources
// when present and read from the workspace otherwise. A resolution failure is
// returned as a failed result with one diagnostic, never as an error.
func (b *Bundler) Compile(
	ctx context.Context,
	sources domain.SourceBundle,
	entry string,
) (*domain.CompilationResult, error) {
	content, err := b.entryContent(ctx, sources, entry)
	if err != nil {
		return domain.NewResolutionFailure(entry, err), nil
	}

	if b.cfg.IsNoDependency(entry) {
		return b.CompileBundle(ctx, domain.SourceBundle{entry: content}, entry)
	}

	result, gen, err := b.bundle(ctx, entry, content)
	if err != nil {
		if errors.Is(err, domain.ErrSupersededRun) || ctx.Err() != nil {
			return nil, err
		}
		return domain.NewResolutionFailure(entry, err), nil
	}
	if !b.current(entry, gen) {
		return nil, superseded(entry, gen)
	}

	return b.CompileBundle(ctx, result.Bundle, entry)
}

// Bundle resolves entry and commits its resolutions without compiling.
// It returns ErrSupersededRun when a newer request for entry started while
// this one was resolving. Starting a newer request cancels the older one.
func (b *Bundler) Bundle(ctx context.Context, entry, content string) (*graph.Result, error) {
	result, _, err := b.bundle(ctx, entry, content)
	return result, err
}

func (b *Bundler) bundle(ctx context.Context, entry, content string) (*graph.Result, uint64, error) {
	ctx, gen := b.begin(ctx, entry)
	defer b.finish(entry, gen)

	project, err := b.project.Load(ctx)
	if err != nil {
		if !b.current(entry, gen) {
			return nil, gen, superseded(entry, gen)
		}
		return nil, gen, err
	}

	result, err := b.builder.Build(ctx, graph.Run{Entry: entry, Content: content, Project: project})
	if !b.current(entry, gen) {
		return nil, gen, superseded(entry, gen)
	}
	if err != nil {
		return nil, gen, err
	}

	if _, ok := result.Bundle[entry]; !ok {
		result.Bundle[entry] = content
	}

	b.commit(ctx, result.Resolutions)
	if b.cfg.DebugSnapshot && b.current(entry, gen) {
		b.writeSnapshot(ctx, entry, result.Bundle)
	}
	return result, gen, nil
}

func superseded(entry string, gen uint64) error {
	return zerr.With(domain.Tagged(domain.ErrSupersededRun, "entry", entry), "generation", gen)
}

// CompileBundle compiles an already resolved bundle and stamps the result
// with its fingerprint.
func (b *Bundler) CompileBundle(ctx context.Context, bundle domain.SourceBundle, entry string) (*domain.CompilationResult, error) {
	compiled, err := b.next.Compile(ctx, bundle, entry)
	if err != nil {
		return nil, err
	}
	compiled.Fingerprint = bundle.Fingerprint()
	return compiled, nil
}

func (b *Bundler) entryContent(ctx context.Context, sources domain.SourceBundle, entry string) (string, error) {
	if content, ok := sources[entry]; ok {
		return content, nil
	}
	exists, err := b.workspace.Exists(ctx, entry)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.Because(domain.ErrResolution, domain.Tagged(domain.ErrSourceNotFound, "path", entry))
	}
	return b.workspace.ReadFile(ctx, entry)
}

// begin starts a new generation for entry and cancels the run it replaces.
func (b *Bundler) begin(ctx context.Context, entry string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.cancels[entry]; ok {
		prev()
	}
	b.cancels[entry] = cancel
	b.generations[entry]++
	return ctx, b.generations[entry]
}

func (b *Bundler) finish(entry string, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.generations[entry] != gen {
		return
	}
	if cancel, ok := b.cancels[entry]; ok {
		cancel()
		delete(b.cancels, entry)
	}
}

func (b *Bundler) current(entry string, gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generations[entry] == gen
}

// commit records resolutions in the index. Index failures are logged and do
// not fail the request.
func (b *Bundler) commit(ctx context.Context, resolutions []domain.Resolution) {
	if err := b.index.Load(ctx); err != nil {
		b.logger.Error(err)
		return
	}
	for _, r := range resolutions {
		b.index.RecordResolution(r.SourceFile, r.Original, r.Resolved)
	}
	if err := b.index.Save(ctx); err != nil {
		b.logger.Error(err)
	}
}

type snapshot struct {
	Entry       string              `json:"entry"`
	Fingerprint string              `json:"fingerprint"`
	Sources     domain.SourceBundle `json:"sources"`
}

// SnapshotPath returns where the debug snapshot of entry is written.
func SnapshotPath(entry string) string {
	return path.Join(domain.DefaultBundlesPath(), entry+".json")
}

func (b *Bundler) writeSnapshot(ctx context.Context, entry string, bundle domain.SourceBundle) {
	data, err := MarshalSnapshot(entry, bundle)
	if err != nil {
		b.logger.Error(err)
		return
	}
	target := SnapshotPath(entry)
	if err := b.workspace.Mkdir(ctx, path.Dir(target)); err != nil {
		b.logger.Error(err)
		return
	}
	if err := b.workspace.WriteFile(ctx, target, string(data)); err != nil {
		b.logger.Error(err)
	}
}

// MarshalSnapshot renders a bundle as indented JSON with sorted paths.
func MarshalSnapshot(entry string, bundle domain.SourceBundle) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot{Entry: entry, Fingerprint: bundle.Fingerprint(), Sources: bundle}); err != nil {
		return nil, zerr.Wrap(err, "failed to encode bundle snapshot")
	}
	return buf.Bytes(), nil
}
