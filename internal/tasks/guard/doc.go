// Package guard is the request authentication and authorization gate.
//
// A request passes through three stages before it reaches a handler:
//
//   - an Extractor locates the session token (cookie, optionally a bearer
//     header),
//   - the Resolver verifies it and loads the caller's Identity from the user
//     store,
//   - zero or more policy gates (RequireAdmin, RequireCreator,
//     RequireVerified) inspect that Identity.
//
// Any stage may halt the chain by writing a JSON {"message": ...} body. A
// request only carries an Identity in its context once the token verified
// and the user exists.
package guard
