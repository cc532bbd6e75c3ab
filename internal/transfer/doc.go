// Package transfer moves asset binaries between the mirror and remote storage.
//
// Download streams a CDN URL into a file that must not already exist. Upload
// sends a file to a storage bucket using a short-lived signed POST policy
// returned by the content API.
package transfer
