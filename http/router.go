package http

import (
	"github.com/gorilla/mux"
)

type Router = mux.Router

func NewRouter() *Router {
	return mux.NewRouter()
}
