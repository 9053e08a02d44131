// Package main runs the rigd HTTP daemon: the autorig services exposed over
// a JSON API so editor plugins and the CLI can drive one shared project.
//
// HTTP API
//
//	GET /v1/health
//	    Liveness check.
//
//	GET /v1/scene
//	    Summarise the loaded mesh: name, fingerprint, vertex, group,
//	    object and selection counts.
//
//	GET /v1/status
//	    Per-slot indicator lights plus the spine state.
//
//	GET /v1/skeleton
//	    The joint hierarchy as a forest of named, positioned nodes.
//
//	GET /v1/selection
//	PUT /v1/selection   { "indices": [...] } | { "group": "name" } | { ..., "add": true }
//	DELETE /v1/selection
//	    Read, replace/extend, or clear the vertex selection.
//
//	POST /v1/joints     { "slot": "Pelvis" }
//	    Place a slot joint at the centroid of the selection.
//
//	POST /v1/joints/mirror
//	    Mirror every placed joint on a mirrorable slot.
//
//	DELETE /v1/joints/{slot}
//	POST /v1/joints/{slot}/mirror
//	    Delete a placed joint (and its twin), or mirror one slot.
//
//	POST /v1/spine
//	DELETE /v1/spine
//	POST /v1/spine/count   { "op": "add" | "remove" | "reset" | "set", "count": N }
//	    Build, delete, or resize the spine chain.
//
//	POST /v1/bones
//	    Parent placed joints into a skeleton; returns the link count.
//
// Behaviour
//
//   - State lives in the project's .autorig directory, so the CLI and the
//     daemon can be pointed at the same project interchangeably.
//   - Requests are serialised: mutations take an exclusive lock and reads a
//     shared one, so a 2xx response always reflects fully applied state.
//   - Responses are JSON. Non-2xx statuses carry {"error": "..."}: 404 for
//     missing things, 409 for collisions, 422 for requests the rig state
//     cannot satisfy.
//   - One access log line per request records method, path, status, bytes,
//     duration and request ID.
//   - The default listen address is :8733.
package main
