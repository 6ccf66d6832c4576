// Package generate runs the whole generation pipeline for one template:
//
//  1. resolve the template source (fetching remote templates)
//  2. load tool settings and the template's own settings
//  3. load the schema and compile the ignore rules
//  4. resolve answers from supplied values, defaults and prompts
//  5. check the output directory
//  6. confirm hooks, then run the pre hook
//  7. render the tree
//  8. run the post hook
//
// Any error stops the run. Files written before a failure stay on disk.
package generate
