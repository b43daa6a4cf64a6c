// Package server exposes the molfig pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/render   render a molecule document to chemfig code
//	GET  /healthz     liveness probe
//	GET  /version     build information
//
// A render request carries the molecule document and, optionally, pipeline
// options. Options not present in the request keep their defaults:
//
//	{
//	  "molecule": {"atoms": [...], "bonds": [...], "rings": [...]},
//	  "options": {"rotate": 30, "aromatic_circles": true, "formats": ["tex", "svg"]}
//	}
//
// Server output is always meant to be dropped into a document as is, so the
// code is wrapped in \chemfig{...} and submol names are ignored. The response
// includes the drawing size in chemfig bond lengths:
//
//	{"request_id": "...", "chemfig": "\\chemfig{...}", "width": 2.6, "height": 1.5}
//
// Artifacts of other requested formats are returned base64-encoded under
// "artifacts". Errors are reported as {"code", "message", "request_id"} with
// a status derived from the error code.
//
// Every request gets an ID, taken from the X-Request-ID header or generated,
// which is echoed in the response header and passed to [observability.ServerHooks].
package server
