// Package auth issues and verifies the API's access tokens and maps the
// role a token carries to the permissions it grants.
//
// There are two roles:
//   - viewer: may list functions and properties and call the getters
//   - operator: everything a viewer may do, plus the setters and the audit log
//
// Tokens are HS256 JWTs signed with security.jwt.secret. They must carry an
// expiry and a role; the issuer is checked when one is configured.
package auth
