// Package state persists sync run records.
//
// The state file is a JSON document mapping absolute source paths to
// their last sync: content hash, timestamp, the reason the file was
// picked up, and the id of the run that wrote it. The document is held
// as raw bytes and updated surgically per field, so fields written by
// other tools or older versions survive a round trip untouched.
//
// A missing state file loads as empty state; only a malformed one is an
// error.
package state
