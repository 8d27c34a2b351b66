// Package startup owns process configuration and startup logging.
//
// Configuration is environment-first: every knob has an env var, and an
// optional YAML file named by CONFIG_FILE supplies defaults underneath
// the environment. Connection credentials are redacted before the
// configuration banner is logged.
//
// The package also carries the build-time version variables injected via
// -ldflags and the route table logging used at boot.
package startup
