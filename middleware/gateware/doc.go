// Package gateware is the route access gate: a fiber middleware that decides
// proceed-or-redirect for every request, fresh each time, from the token
// alone. No session state is kept in process.
//
// Decision table:
//   - path outside the protected prefixes, or on the skip list: proceed.
//   - no token, or the token fails to decode (expired and malformed are never
//     distinguished to the user): redirect to the login route.
//   - valid token on a data-table path under the dashboard prefix without
//     data-table access: redirect to the unauthorized route.
//   - otherwise: store the claims in locals and proceed.
//
// The package mirrors the claim interfaces it needs instead of importing the
// root package, to keep the dependency arrow pointing one way.
package gateware
