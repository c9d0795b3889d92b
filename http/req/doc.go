/*
Package req decodes the payload of an HTTP request into a Go value.

A Parser supports JSON-encoded request bodies and payloads encoded in query parameters.
In both cases, package req expects to decode payloads into a pointer to a struct
whose struct tags match keys in the payload to fields on the struct:
"json" for request bodies, "schema" for query params.

Package req does not validate what it decodes; see package valid.

Failures caused by the request are returned as a *DecodeError,
whose Response method renders the same status code and plain-text body for the same failure.
Failures caused by calling code wrap vouch sentinel errors instead,
so handlers can tell a bad request from a bug.
*/
package req
