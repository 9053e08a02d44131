// Package host exposes a rig project over HTTP and provides the matching
// client. The server (run by rigd) owns the project directory and serialises
// rigging operations for any number of CLI callers; the client implements
// domain.HostClient on top of the same routes.
package host
