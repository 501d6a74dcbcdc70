// Package sfc wraps Vue single-file component documents: where they came from
// (Source), their raw bytes (Document), how they are fetched (Loader) and how
// the <script> block is located and spliced back (ExtractScript, ReplaceScript).
package sfc
