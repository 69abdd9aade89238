// Package todo holds the task model and the flat-file task store.
//
// The task file is plain text with one task per line and three fields
// separated by a single TAB character:
//
//	<description>\t<details>\t<dd-mm-yyyy>
//
// There is no header and no escaping. Description and details may not contain
// TAB, LF or CR; Add rejects such text with ErrInvalidField instead of writing
// a line that would fail to load again.
//
// # Errors
//
//   - ErrNotFound: the task file does not exist (LoadOrEmpty treats it as empty)
//   - *ParseError: a line is malformed; carries the 1-based line number
//   - *WriteError: saving failed; the previous file content is left in place
//   - ErrLocked: another process holds the task file lock
//
// # Saving
//
// Save writes to a temporary file in the same directory, syncs it and renames
// it over the task file, so a crash mid-write never truncates existing data.
package todo
