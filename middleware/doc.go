// Package middleware adapts a cookieless.Store to net/http.
//
// [Sessions] installs a lazily loaded [Session] in the request context and
// commits it after the handler returns: a used session is always written back
// under its identifier, a destroyed one is deleted at the moment of Destroy and
// continues under the replacement identifier unless dropped. [RequireSession]
// rejects anonymous requests.
//
// # What this package must NOT do
//
//   - Read or write cookies, including Set-Cookie.
//   - Decide how identifiers reach the client; handlers return Session.ID
//     however their protocol requires.
//   - Talk to Redis except through the store.
package middleware
