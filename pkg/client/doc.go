// Package client implements the HTTP client for the roadmap service.
//
// # Endpoints
//
//	GET  /check_roadmap/{userId}   -> {"exists": bool}
//	POST /generate_roadmap         {"user_id": "..."} -> roadmap payload
//	GET  /roadmap/{userId}         -> stored roadmap payload
//
// # Errors
//
// Failures map onto [errors] codes:
//
//   - transport failures: ErrCodeNetwork, "could not connect to the backend server"
//   - non-2xx responses: [errors.BackendError] carrying the service's "error"
//     field, or "Unknown error" when the body has none
//   - 2xx responses that are not JSON: ErrCodeMalformedPayload
//
// There is no retry policy. Callers decide what to do with a failure.
//
// [errors]: github.com/matzehuels/roadtower/pkg/errors
// [errors.BackendError]: github.com/matzehuels/roadtower/pkg/errors.BackendError
package client
