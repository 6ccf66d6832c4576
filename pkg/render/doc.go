// Package render materialises a template tree into an output directory.
//
// # Traversal
//
// The walker visits the template root depth first in lexical order. For
// every entry it:
//
//  1. skips the entry (and its subtree) when the ignore matcher excludes it
//  2. renders the raw name against the answers; a blank result drops the
//     entry, which is how a file or directory is made conditional
//  3. recurses into directories
//  4. renders files whose name ends with the marker suffix (".tmpl" by
//     default) and strips the suffix, or copies other files byte for byte
//
// Output directories are created when the first file below them is written,
// so a directory whose children were all dropped never appears. A template
// directory that is empty to begin with is still created.
//
// # Writes
//
// File content is built in memory and written through a temporary file in
// the target directory followed by a rename. A file is either complete or
// absent. There is no rollback across files: when the walk fails midway
// the files written so far stay on disk.
package render
