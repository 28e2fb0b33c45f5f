// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method routing.

NewRouter wires handlers to their dependencies and wraps every route with
request logging; control routes additionally require the bearer token:

	mux := router.NewRouter(st, verifier, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

Routes:

	GET    /health       liveness probe
	POST   /webhook      platform event ingestion
	POST   /poll         start a poll (auth)
	GET    /poll-status  live tally (public)
	PUT    /poll-status  end poll, report winner (auth)
	DELETE /poll-status  reset (auth)
	GET    /             banner
*/
package router
