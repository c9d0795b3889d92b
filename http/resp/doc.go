/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides three ways of responding to an HTTP request:
- rendering JSON data, enveloped as {"data": ...}
- writing a Static response prepared ahead of time, e.g., a rejected payload
- reporting an error in calling code as a bare 500
*/
package resp
