// Package zone classifies files in the mirror tree by the intent zone that
// contains them.
//
// The mirror root holds three sibling zones: ignore/ (never pushed or
// published), reUpload/ (binary reupload plus metadata update) and metadata/
// (metadata-only update). Membership is decided by path prefix alone, once per
// file, and ignore/ always wins. Walk exposes the tree as a lazy sequence so
// callers can finish the remote work for one file before the next is read.
package zone
