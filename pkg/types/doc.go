// Package types defines the data shared by cutter's generation stages:
// variable kinds, the ordered Answers collection, the read-only RenderContext
// handed to the walker and hooks, and confirmation requests.
package types
