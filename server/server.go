// Package server provides an HTTP REST server that compiles regular
// expressions to NFAs and keeps named ones in persistence.
//
// All endpoints are under /api/v1:
//
//	GET    /info            - get version info on the server.
//	POST   /parse           - compile an expression without storing it.
//	GET    /nfas            - get all stored expressions.
//	POST   /nfas            - compile and store a named expression.
//	GET    /nfas/{id}       - get a stored expression and its NFA.
//	GET    /nfas/{id}/dot   - get the NFA of a stored expression as DOT.
//	DELETE /nfas/{id}       - delete a stored expression.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/renfa/regex"
	"github.com/dekarrin/renfa/server/api"
	"github.com/dekarrin/renfa/server/svc"
	"github.com/go-chi/chi/v5"
)

// RenfaServer is an HTTP REST server that compiles expressions and serves
// stored NFAs. The zero-value of a RenfaServer should not be used directly;
// call New() to get one ready for use.
type RenfaServer struct {
	router chi.Router
	db     store.Store
}

// New creates a new RenfaServer that keeps expressions in db and compiles them
// with parseOpts. The server takes ownership of db; it is closed by Close.
func New(db store.Store, parseOpts regex.Options) *RenfaServer {
	a := api.API{
		Backend: svc.Service{
			DB:           db,
			ParseOptions: parseOpts,
		},
		ErrorDelay: time.Second,
	}

	return &RenfaServer{
		router: newRouter(a),
		db:     db,
	}
}

// ServeHTTP routes req to the matching API endpoint.
func (rs *RenfaServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rs.router.ServeHTTP(w, req)
}

// ServeForever begins listening on the given address for HTTP REST client
// requests. It returns only when the listener fails.
func (rs *RenfaServer) ServeForever(address string) error {
	log.Printf("INFO  Listening on %s", address)
	return http.ListenAndServe(address, rs)
}

// Close releases the store used by the server.
func (rs *RenfaServer) Close() error {
	return rs.db.Close()
}
