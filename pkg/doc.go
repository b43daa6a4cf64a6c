// Package pkg provides the libraries behind molfig, which converts molecules
// with 2D coordinates into LaTeX chemfig code.
//
// # Overview
//
// A molecular graph has rings and may have several fragments, while chemfig
// code is a tree: one atom to start from, branches in parentheses, and ring
// closures that point back to atoms already drawn. The packages here turn
// one into the other:
//
//  1. [molgraph] - The input graph: atoms, bonds, rings, aromatic flags
//  2. [io] - JSON and TOML molecule documents
//  3. [chemfig] - The bond tree builder and chemfig code generator
//  4. [render] - Packaging as TeX, plus Graphviz and PNG debug views
//  5. [pipeline] - Orchestration (decode → build → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	molecule document (JSON/TOML)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [chemfig] package (spanning tree, trunk, rings, placement)
//	         ↓
//	    [render] packages (tex, dot, svg, png, preview)
//
// # Quick Start
//
//	g, err := io.ImportJSON("caffeine.json")
//	if err != nil {
//	    return err
//	}
//	m, err := chemfig.Build(g, chemfig.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	code, err := latex.Format(m.Lines(), latex.Options{ChemfigCommand: true, Terse: true})
//
// # Infrastructure
//
// [cache] - Render cache backends: file system for the CLI, Redis for
// servers sharing one cache, and a no-op cache.
//
// [server] - HTTP render service used by `molfig serve`.
//
// [observability] - Hooks for tracing pipeline, cache and server events.
//
// [errors] - Error codes shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// [molgraph]: github.com/matzehuels/molfig/pkg/molgraph
// [io]: github.com/matzehuels/molfig/pkg/io
// [chemfig]: github.com/matzehuels/molfig/pkg/chemfig
// [render]: github.com/matzehuels/molfig/pkg/render
// [pipeline]: github.com/matzehuels/molfig/pkg/pipeline
// [cache]: github.com/matzehuels/molfig/pkg/cache
// [server]: github.com/matzehuels/molfig/pkg/server
// [observability]: github.com/matzehuels/molfig/pkg/observability
// [errors]: github.com/matzehuels/molfig/pkg/errors
// [buildinfo]: github.com/matzehuels/molfig/pkg/buildinfo
package pkg
