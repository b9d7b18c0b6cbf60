// Package organizer implements the directory organizing engine.
//
// The engine scans a single target directory, classifies each regular file by
// its extension, and relocates it into a category subdirectory (Images,
// Documents, Audio, ...). The pipeline for one run is:
//
//  1. Validate: the target must exist and be a directory, otherwise the run
//     aborts before any entry is touched.
//  2. Scan: directory entries are enumerated once; non-regular entries
//     (subdirectories, symlinks, sockets) are counted as skipped.
//  3. Per entry: Classify -> Provision (ensure the category directory) ->
//     Resolve (find a collision-free destination) -> Act (rename, or log the
//     planned move under dry-run).
//
// Per-entry failures are recorded in the [RunResult] and do not abort the
// scan; the aggregate exit code is nonzero when any entry failed.
//
// Operations emit [ProgressUpdate] values via channels for non-blocking
// status reporting to CLI/UI layers.
package organizer
