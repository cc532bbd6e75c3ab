// Command assetsync mirrors a content-management asset store into a local
// directory tree.
//
// `assetsync pull [limit]` downloads assets into <root>/metadata and writes
// <root>/assets.json. Moving a file into reUpload/ and running
// `assetsync push` uploads its bytes again; files left in metadata/ have
// their alt text and position pushed. `assetsync publish` publishes every
// indexed file outside ignore/. `assetsync test` checks the mirror and the
// API. `assetsync history` shows what past runs did.
package main
