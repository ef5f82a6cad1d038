package server

import "net/http"

// Route binds a URL to its method-filtered handler.
type Route struct {
	URL     string
	Handler http.Handler
}

type RouterProviderInterface interface {
	Get(url string, handler http.HandlerFunc)
	Post(url string, handler http.HandlerFunc)
	GetRoutes() []Route
}

type RouterProvider struct {
	routes []Route
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func (rp *RouterProvider) Get(url string, handler http.HandlerFunc) {
	rp.routes = append(rp.routes, Route{URL: url, Handler: methodHandler(http.MethodGet, handler)})
}

func (rp *RouterProvider) Post(url string, handler http.HandlerFunc) {
	rp.routes = append(rp.routes, Route{URL: url, Handler: methodHandler(http.MethodPost, handler)})
}

func (rp *RouterProvider) GetRoutes() []Route {
	return rp.routes
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
