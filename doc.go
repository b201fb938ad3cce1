// Package auth implements the session and authentication state machine for an
// exam candidate portal: hall-ticket plus date-of-birth verification, single
// active session per candidate, short-lived JWT issuance, and role gated route
// protection.
//
// Login flow:
//   - CandidateProvider verifies a (hallticket, dob) pair against the stored
//     record without mutating login state. Unknown hall tickets and DOB
//     mismatches return the same error on purpose.
//   - SessionIssuer flips the is_logged_in flag with a single conditional
//     update, so two concurrent logins for the same candidate cannot both win.
//   - TokenService signs the resulting IdentityClaims into a token whose
//     expiry is fixed at issuance.
//
// Request flow:
//   - gateware middleware decodes the token on every protected request,
//     redirects unauthenticated traffic to the login route, restricts the
//     data-table area to admins, and attaches claims to the request context.
//   - Downstream consumers only ever see the SessionView projection, which
//     never carries the DOB hash.
//
// Logout is absorbed: the reconciler clears the login flag and swallows
// persistence failures, since the client token is discarded regardless.
package auth
