// Package pkg provides the core libraries for the engrave layout resolver.
//
// # Overview
//
// Engrave turns a declarative layout document into solved two-dimensional
// geometry. A document describes systems of grid lines and blocks related by
// linear constraints; the resolver solves those constraints, clears
// collisions, justifies the result to a target width, and hands back
// paint-ready primitives. The pkg directory is organized into four areas:
//
//  1. [solver], [interval], [layout] - Domain logic (constraint solving,
//     collision detection, resolution)
//  2. [cache], [errors], [observability], [httputil] - Infrastructure
//  3. [document], [render] - Wire format and output generation
//  4. [pipeline] - Orchestration (load → resolve → render)
//
// # Architecture
//
// The typical data flow through engrave:
//
//	Layout document (JSON/TOML)
//	         ↓
//	    [document] package (parse + validate)
//	         ↓
//	    [layout] package (solve constraints, resolve collisions, justify)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON/DOT output)
//
// # Quick Start
//
// Resolve a document and render it:
//
//	import (
//	    "context"
//	    "github.com/scorewell/engrave/pkg/cache"
//	    "github.com/scorewell/engrave/pkg/pipeline"
//	)
//
//	func main() {
//	    c, _ := cache.NewMemoryCache(128)
//	    runner := pipeline.NewRunner(c, nil, nil)
//	    defer runner.Close()
//
//	    result, err := runner.Execute(context.Background(), pipeline.Options{
//	        Path:    "score.json",
//	        Formats: []string{"svg"},
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//	    _ = result.Artifacts["svg"]
//	}
package pkg
