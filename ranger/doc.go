/*
Package ranger initializes and manages a vouch service with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type,
constructed with [New] from a [config.Config].
[New] builds every component a service needs from that configuration:
a [logger.Logger], a [resp.Responder], an [extract.Extractor] and a [router.Router].

Register routes on [Ranger.Router], reading payloads with the extractor [*Ranger.EmitExtractor] returns:

	rng, err := ranger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ex := rng.EmitExtractor()
	rng.Router.Handle(router.Route{
		Path:    "/users",
		Method:  http.MethodPost,
		Handler: extract.HandleBody(ex, createUser),
	})

	if err := rng.Guide(); err != nil {
		log.Fatal(err)
	}

[*Ranger.Guide] begins the web server, listening on the configured HOST and PORT.
Stop that web server with [*Ranger.Shutdown],
call the context.CancelFunc returned by [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

Every request passes through the middlewares [*Ranger.Handler] lists before reaching a route.
*/
package ranger
