// Package pkg provides the core libraries for KCMC instance preprocessing.
//
// # Overview
//
// KCMC optimizes wireless sensor network placements under two guarantees:
// every point of interest (POI) must be covered by at least k installed
// sensors, and must reach a sink through at least m node-disjoint sensor
// paths. A solution names the candidate sensor positions that can stay
// uninstalled while both guarantees hold.
//
// The pkg directory is organized into these areas:
//
//  1. [instance] - The tri-partite instance graph, random generation, and
//     the line serialization format
//  2. [dinic] - The level-graph validation engine and the flood methods
//  3. [genetic] - The genetic algorithm that shrinks valid solutions
//  4. [pipeline] - Orchestration of the preprocessing methods with caching
//  5. [cache], [observability], [render], [errors] - Supporting
//     infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Serialized instance (or geometry parameters)
//	         ↓
//	    [instance] package (parse / generate the tri-partite graph)
//	         ↓
//	    [dinic] package (validate, local optimum, min/max flood)
//	         ↓
//	    [genetic] package (optional: evolve a smaller solution)
//	         ↓
//	    TSV reports / installation bitmaps / diagrams
//
// # Quick Start
//
// Generate an instance and preprocess it:
//
//	import (
//	    "context"
//	    "github.com/wsnlab/kcmc/pkg/instance"
//	    "github.com/wsnlab/kcmc/pkg/pipeline"
//	)
//
//	in, _ := instance.Generate(instance.Params{
//	    NumPOIs: 10, NumSensors: 100, NumSinks: 1,
//	    AreaSide: 1000, CoverageRadius: 100, CommunicationRadius: 125,
//	    Seed: 7,
//	})
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Preprocess(context.Background(), in, pipeline.Options{K: 2, M: 2})
//	for _, report := range result.Reports {
//	    fmt.Println(report.TSV())
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/dinic/...    # Specific package
//	go test -short ./pkg/...   # Skip property-based tests
//
// [instance]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/instance
// [dinic]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/dinic
// [genetic]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/genetic
// [pipeline]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/cache
// [observability]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/observability
// [render]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/render
// [errors]: https://pkg.go.dev/github.com/wsnlab/kcmc/pkg/errors
package pkg
