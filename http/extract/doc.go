/*
Package extract hands HTTP handlers request payloads that have already been validated.

Reading a payload happens in two steps.
First, a *req.Parser decodes the JSON body or the query params of a request into a T.
Then, a *valid.Validator checks the T against the rules its type carries.
Only a T passing both steps is returned, wrapped as a Body[T] or a Query[T];
no exported path leads from an Extractor to an unvalidated T.

A request failing either step is a Rejection.
A *DecodeRejection responds exactly as package req would on its own.
A *ValidationRejection responds with 422 Unprocessable Entity and a JSON body like:

	{"errors":[],"properties":{"name":{"errors":["The length of the value must be <= 3."]}}}

Handlers either call ReadBody and ReadQuery themselves, passing any error to Extractor.Reject,
or are adapted with HandleBody, HandleQuery and HandleBodyAndQuery, which never call the handler on failure.

	ex := extract.New()
	router.Handle("/users", extract.HandleBody(ex, func(w http.ResponseWriter, r *http.Request, body extract.Body[User]) {
		user := body.Get()
		...
	}))
*/
package extract
