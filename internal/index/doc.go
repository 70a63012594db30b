// Package index provides the static class index consumed by hierarchy
// resolution.
//
// An Index is a read-only snapshot of class structure: for every class it
// records the superclass, declared fields and methods, and the annotations
// attached to the class or its members. Indexes are built once, by the Go
// source analyzer or from a descriptor file, and never re-queried against
// live types.
//
// Key types:
//   - DotName: fully qualified class name
//   - ClassInfo: structural descriptor of one class
//   - AnnotationInstance: annotation with its target and parameter values
//   - Indexer: accumulates classes and completes an immutable Index
package index
