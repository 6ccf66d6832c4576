// Package testutil provides helpers for building template trees on disk and
// inspecting generated output in tests.
//
// Key components:
//   - FileTree: declarative directory layout written with CreateFileTree
//   - ListTree: sorted listing of an output tree for whole-tree assertions
//   - Schema helpers for writing minimal cutter.yaml documents
//
// All helpers write under t.TempDir() and fail the test on error.
package testutil
