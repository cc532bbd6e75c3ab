// Package preflight provides readiness checks for the mirror directory and
// the content API.
//
// The CLI "assetsync test" command runs RunAll and renders the results as a
// table. Network modes call CheckDirectoryAccess on the mirror root before
// taking the run lock.
package preflight
