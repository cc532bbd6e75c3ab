// Package cms talks to the content-management GraphQL API that owns the
// remote asset store.
//
// Each exported method issues exactly one GraphQL document as a JSON POST
// with bearer authentication and decodes only the fields the sync engine
// needs. Failures carry services.ErrRemoteCall so callers can classify them.
package cms
