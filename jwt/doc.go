// Package jwt carries session identifiers inside signed tokens. A [Manager]
// issues a token for an identifier and, as an identifier extractor, recovers
// the identifier from a verified bearer token on incoming requests.
//
// Tokens never hold session data; the record stays in the store.
package jwt
