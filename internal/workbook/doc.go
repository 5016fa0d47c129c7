// Package workbook persists sheets to files.
//
// A Document is the format-agnostic form of a sheet's contents. Codecs for
// concrete file formats live in their own packages and are looked up by file
// extension through a Registry. RecoveryStore uses a codec to autosave the
// session so it can be restored after a crash.
package workbook
