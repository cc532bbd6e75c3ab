// Package assetname encodes a remote asset identity into a local filename and
// recovers it again.
//
// Downloaded binaries are named "<name> <id> <name>" where <name> is the
// remote file name with whitespace replaced by underscores. The id is the
// second whitespace-delimited token. The filename is the only persistent link
// between a file on disk and its remote record, so moving or copying a file
// keeps its identity as long as the name is left intact.
package assetname
