// Package graph defines the design graph types produced by scene evaluation.
// The design graph is an immutable DAG of primitives, boolean combinations,
// transforms, and groups that represents a constructive-solid-geometry scene.
package graph
