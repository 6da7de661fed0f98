// Package health serves liveness and readiness probes.
//
// GET /health always answers while the process is up. GET /health/ready also
// checks the optional dependencies (run-history database, object storage) and
// answers 503 when one of them is unreachable.
package health
