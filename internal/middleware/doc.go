// Package middleware provides the HTTP middleware chain: request logging,
// Prometheus metrics, and a permissive CORS policy. Probe endpoints
// (/health, /livez, /readyz, /metrics) are excluded from logging and
// metrics to keep noise out of both.
package middleware
