package contracts

import "github.com/julienschmidt/httprouter"

// Router is the registration surface handlers see. *httprouter.Router
// satisfies it, as does the instrumented router built by the application.
type Router interface {
	Handle(method, path string, handle httprouter.Handle)
}

type Handler interface {
	RegisterRoutes(Router)
}
