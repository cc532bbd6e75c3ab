// Package assetindex persists the mirror's asset index: the JSON array at
// <root>/assets.json that correlates remote asset ids with their file names,
// download URLs, and editable metadata.
//
// Records are unique by id. Pull merges new records in without touching
// existing ones; push and publish only read the index. A flock-based lock
// file keeps two processes from running against the same mirror at once.
package assetindex
