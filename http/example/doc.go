/*
Package example serves a toy user directory built on vouch's extractors.

	GET  /healthz        reports the service is up
	POST /orders         accepts an Order, checked against its JSON Schema document
	GET  /users          lists users, filtered and paged by query params
	POST /users          adds a User
	POST /users/search   finds users by name; query params page the results

Try it out with cmd/vouchd:

	curl -i -H 'Content-Type: application/json' -d '{"name":"taro"}' localhost:3000/users
*/
package example
