// Package yoga implements the backend for booking yoga classes: users,
// teachers and sessions persisted with Bun, plus stateless JWT
// authentication served over Fiber.
//
// Authentication:
//   - TokenService issues HS512 tokens whose subject is the user email and
//     reports validity as a boolean. Parse failures never escape.
//   - The jwtware middleware runs once per request. A missing or invalid token
//     lets the request through without a principal; RequireAuth rejects it on
//     protected groups.
//   - The resolved Principal is request scoped: it lives in fiber locals and
//     in the request context.Context and dies with them.
//
// Participation:
//   - SessionService.Participate and NoLongerParticipate are checked, not
//     idempotent. A second call fails with a bad request error and leaves the
//     participant list untouched.
//
// Mapping:
//   - Entity to DTO conversions are explicit functions. Nil inputs map to nil
//     outputs and user ids that cannot be resolved are dropped from the
//     resulting participant list.
package yoga
