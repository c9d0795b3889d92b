/*
Package vouch holds what the rest of the module shares:
sentinel errors, context keys, and the [Environment] a service runs in.

The interesting parts live in subpackages:

  - valid validates a decoded payload and reports violations as a tree of violations.
  - http/req decodes JSON bodies and query strings, rejecting malformed requests.
  - http/extract ties the two together into Body and Query extractors
    whose failures render as HTTP responses.
*/
package vouch
