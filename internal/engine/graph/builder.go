// Package graph builds the source bundle of an entry file by walking its
// imports breadth first.
package graph

import (
	"context"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Builder resolves the transitive imports of an entry into a SourceBundle.
type Builder struct {
	workspace ports.Workspace
	cache     ports.PackageCache
	resolver  *resolver.Resolver
	cfg       *domain.Config
	tracer    ports.Tracer
	logger    ports.Logger
}

// New creates a Builder.
func New(
	workspace ports.Workspace,
	cache ports.PackageCache,
	res *resolver.Resolver,
	cfg *domain.Config,
	tracer ports.Tracer,
	logger ports.Logger,
) *Builder {
	return &Builder{
		workspace: workspace,
		cache:     cache,
		resolver:  res,
		cfg:       cfg,
		tracer:    tracer,
		logger:    logger,
	}
}

type file struct {
	path    string
	content string
}

// traversal is the mutable state of one Build call.
type traversal struct {
	*Builder
	run     Run
	session *resolver.Session

	mu          sync.Mutex
	visited     map[string]bool
	visitedKeys map[domain.ResolvedPackageKey]bool
	bundle      domain.SourceBundle
	resolutions []domain.Resolution
	edges       []Edge
}

// Build walks the imports of run.Entry level by level. Every file of a level
// is processed concurrently and the next level starts only after the whole
// level has finished. Any error aborts the traversal and no bundle is
// returned.
func (b *Builder) Build(ctx context.Context, run Run) (_ *Result, err error) {
	ctx, span := b.tracer.Start(ctx, "resolve.build", ports.WithAttribute("entry", run.Entry))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if run.Project == nil {
		run.Project = &domain.Project{}
	}
	for _, w := range run.Project.Warnings {
		b.logger.Warn(w.Error())
	}

	t := &traversal{
		Builder:     b,
		run:         run,
		session:     run.Session,
		visited:     map[string]bool{run.Entry: true},
		visitedKeys: make(map[domain.ResolvedPackageKey]bool),
		bundle:      make(domain.SourceBundle),
	}
	if t.session == nil {
		t.session = resolver.NewSession()
	}

	level := []file{{path: run.Entry, content: run.Content}}
	for depth := 0; len(level) > 0; depth++ {
		level, err = t.processLevel(ctx, depth, level)
		if err != nil {
			return nil, err
		}
	}

	slices.SortFunc(t.resolutions, func(a, b domain.Resolution) int {
		if c := strings.Compare(a.SourceFile, b.SourceFile); c != 0 {
			return c
		}
		return strings.Compare(a.Original, b.Original)
	})

	ig, err := NewImportGraph(t.bundle.Paths(), t.edges)
	if err != nil {
		return nil, err
	}
	span.SetAttribute("files", len(t.bundle))
	return &Result{Bundle: t.bundle, Resolutions: t.resolutions, Graph: ig}, nil
}

func (t *traversal) processLevel(ctx context.Context, depth int, level []file) (_ []file, err error) {
	ctx, span := t.tracer.Start(ctx, "resolve.level",
		ports.WithAttribute("depth", depth),
		ports.WithAttribute("files", len(level)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	var (
		nextMu sync.Mutex
		next   []file
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range level {
		g.Go(func() error {
			found, err := t.processFile(gctx, f)
			if err != nil {
				return err
			}
			nextMu.Lock()
			next = append(next, found...)
			nextMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}

// processFile resolves the imports of f, adds f to the bundle with its
// package imports rewritten and returns the files discovered for the next
// level.
func (t *traversal) processFile(ctx context.Context, f file) ([]file, error) {
	if t.cfg.IsNoDependency(f.path) {
		t.addToBundle(f.path, f.content)
		return nil, nil
	}

	refs := domain.ParseImports(f.path, f.content)
	replacements := make(map[string]string)
	var next []file
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		imp, err := t.resolveImport(ctx, f.path, ref.RawPath)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "source", f.path), "import", ref.RawPath)
		}
		if imp.rewrite {
			replacements[ref.RawPath] = imp.resolved
		}
		t.record(f.path, ref.RawPath, imp.resolved)
		next = append(next, imp.discovered...)
	}

	t.addToBundle(f.path, domain.RewriteImports(f.content, refs, replacements))
	return next, nil
}

type resolvedImport struct {
	resolved string
	// rewrite is set when the literal in the source must be replaced for the
	// compiler to find the file.
	rewrite    bool
	discovered []file
}

func (t *traversal) resolveImport(ctx context.Context, source, raw string) (resolvedImport, error) {
	literal, remapped := t.run.Project.Remappings.Apply(raw)

	if domain.IsRelativeImport(literal) {
		target := path.Join(path.Dir(source), literal)
		if target == ".." || strings.HasPrefix(target, "../") {
			return resolvedImport{}, domain.Because(domain.ErrResolution,
				domain.Tagged(domain.ErrPathOutsideWorkspace, "path", target))
		}
		discovered, err := t.workspaceFile(ctx, target)
		if err != nil {
			return resolvedImport{}, err
		}
		return resolvedImport{resolved: target, rewrite: remapped, discovered: discovered}, nil
	}

	// A remapping may point into the workspace, for vendored libraries.
	if remapped {
		if target, err := clean(literal); err == nil && !t.inDeps(target) {
			exists, err := t.workspace.Exists(ctx, target)
			if err != nil {
				return resolvedImport{}, domain.Because(domain.ErrResolution, err)
			}
			if exists {
				discovered, err := t.workspaceFile(ctx, target)
				if err != nil {
					return resolvedImport{}, err
				}
				return resolvedImport{resolved: target, rewrite: true, discovered: discovered}, nil
			}
		}
	}

	return t.resolvePackage(ctx, literal)
}

func (t *traversal) resolvePackage(ctx context.Context, literal string) (resolvedImport, error) {
	ref, err := domain.ParsePackageReference(literal)
	if err != nil {
		return resolvedImport{}, domain.Because(domain.ErrResolution, err)
	}
	version, err := t.resolver.Resolve(ctx, ref, t.run.Project, t.session)
	if err != nil {
		return resolvedImport{}, err
	}

	key := domain.NewResolvedPackageKey(ref, version)
	node, err := t.cache.GetOrFetch(ctx, key)
	if err != nil {
		return resolvedImport{}, zerr.With(domain.Because(domain.ErrResolution, err), "package", key.String())
	}
	if _, ok := node.Files[ref.Subpath]; !ok || !t.cfg.IsBundled(ref.Subpath) {
		return resolvedImport{}, zerr.With(domain.Because(domain.ErrResolution,
			domain.Tagged(domain.ErrSourceNotFound, "path", ref.Subpath)), "package", key.String())
	}

	resolved := key.FilePath(t.cfg.DepsDir, ref.Subpath)
	return resolvedImport{resolved: resolved, rewrite: true, discovered: t.claimPackage(node)}, nil
}

// claimPackage returns the bundled files of node the first time the key is
// seen in this traversal.
func (t *traversal) claimPackage(node *domain.ResolvedNode) []file {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visitedKeys[node.Key] {
		return nil
	}
	t.visitedKeys[node.Key] = true

	var out []file
	for _, rel := range slices.Sorted(maps.Keys(node.Files)) {
		if !t.cfg.IsBundled(rel) {
			continue
		}
		p := node.Key.FilePath(t.cfg.DepsDir, rel)
		if t.visited[p] {
			continue
		}
		t.visited[p] = true
		out = append(out, file{path: p, content: node.Files[rel]})
	}
	return out
}

// workspaceFile reads target from the workspace the first time it is seen.
// Files below the package directory are only reachable through their package.
func (t *traversal) workspaceFile(ctx context.Context, target string) ([]file, error) {
	t.mu.Lock()
	seen := t.visited[target]
	if !seen && !t.inDeps(target) {
		t.visited[target] = true
	}
	t.mu.Unlock()
	if seen {
		return nil, nil
	}
	if t.inDeps(target) {
		return nil, domain.Because(domain.ErrResolution, domain.Tagged(domain.ErrSourceNotFound, "path", target))
	}

	exists, err := t.workspace.Exists(ctx, target)
	if err != nil {
		return nil, domain.Because(domain.ErrResolution, err)
	}
	if !exists {
		return nil, domain.Because(domain.ErrResolution, domain.Tagged(domain.ErrSourceNotFound, "path", target))
	}
	content, err := t.workspace.ReadFile(ctx, target)
	if err != nil {
		return nil, domain.Because(domain.ErrResolution, err)
	}
	return []file{{path: target, content: content}}, nil
}

func (t *traversal) inDeps(p string) bool {
	return p == t.cfg.DepsDir || strings.HasPrefix(p, t.cfg.DepsDir+"/")
}

func (t *traversal) addToBundle(p, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bundle[p] = content
}

func (t *traversal) record(source, original, resolved string) {
	t.mu.Lock()
	t.edges = append(t.edges, Edge{Source: source, Target: resolved})
	if original != resolved {
		t.resolutions = append(t.resolutions, domain.Resolution{
			SourceFile: source,
			Original:   original,
			Resolved:   resolved,
		})
	}
	t.mu.Unlock()

	if original != resolved && t.run.Recorder != nil {
		t.run.Recorder.RecordResolution(source, original, resolved)
	}
}

// clean normalizes a workspace path and rejects paths leaving the workspace.
func clean(p string) (string, error) {
	c := path.Clean(p)
	if path.IsAbs(c) || c == ".." || strings.HasPrefix(c, "../") {
		return "", domain.Tagged(domain.ErrPathOutsideWorkspace, "path", p)
	}
	return c, nil
}
