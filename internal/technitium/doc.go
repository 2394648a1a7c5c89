// Package technitium is the HTTP client for the Technitium DNS server
// management API.
//
// The only operation is Client.Call, which GETs one endpoint with the access
// token (and optional cluster node) injected into the query string and returns
// the envelope's response payload as raw JSON. Every failure mode, from a
// refused connection to a non-ok application status, is logged with the token
// redacted and returned as a nil payload; Call never returns an error, which
// is what lets the collector treat each upstream query as independently
// best-effort.
package technitium
