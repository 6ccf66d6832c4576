package testutil

import (
	"testing"
)

// SchemaYAML wraps question definitions in a v1 schema document.
// questions is the indented body of the questions mapping.
func SchemaYAML(questions string) string {
	return "schemaVersion: v1\nquestions:\n" + questions
}

// WriteSchema writes cutter.yaml into dir
func WriteSchema(t *testing.T, dir, questions string) string {
	t.Helper()
	return CreateFile(t, dir, "cutter.yaml", SchemaYAML(questions))
}
