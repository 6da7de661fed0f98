// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting the sync endpoints.
//   - RayID: a unique request id per request, stored in Locals("ray_id") and echoed
//     in the X-Ray-ID response header.
package middleware
