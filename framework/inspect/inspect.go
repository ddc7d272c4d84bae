// Package inspect serves a read-only JSON view of a container's
// definitions. Nothing here resolves a bean, so browsing the endpoint
// never triggers a factory.
package inspect

import (
	"log/slog"
	"net/http"

	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
)

// Registry is the part of *container.Container the handlers read.
type Registry interface {
	Len() int
	Beans() []container.BeanInfo
}

// Bean is the JSON form of a container.BeanInfo.
type Bean struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Name         string `json:"name,omitempty"`
	Type         string `json:"type"`
	Scope        string `json:"scope"`
	Instantiated bool   `json:"instantiated"`
}

// Listing is the body of GET /beans.
type Listing struct {
	Count int    `json:"count"`
	Beans []Bean `json:"beans"`
}

func toBean(info container.BeanInfo) Bean {
	b := Bean{
		ID:           info.ID.String(),
		Kind:         info.ID.Kind().String(),
		Scope:        info.Scope.String(),
		Instantiated: info.Instantiated,
	}
	if info.ID.Kind() == container.KindNamed {
		b.Name = info.ID.Name()
	}
	if info.Type != nil {
		b.Type = info.Type.String()
	}
	return b
}

// Routes registers the handlers on r:
//
//	GET /beans         every definition
//	GET /beans/{name}  one named definition, 404 if absent
//
// Responses are marked uncacheable since instantiation state changes.
func Routes(r *routing.Router, reg Registry) {
	r.Group(func(r *routing.Router) {
		r.Middleware(noStore)
		r.Get("/beans", listBeans(reg))
		r.Get("/beans/{name}", showBean(reg))
	})
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, req)
	})
}

// Handler returns a standalone router serving Routes.
func Handler(reg Registry, logger *slog.Logger) http.Handler {
	r := routing.New(logger)
	Routes(r, reg)
	return r
}

func listBeans(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		infos := reg.Beans()
		out := Listing{Count: reg.Len(), Beans: make([]Bean, 0, len(infos))}
		for _, info := range infos {
			out.Beans = append(out.Beans, toBean(info))
		}
		gohttp.NewResponse(w).JSON(http.StatusOK, out)
	}
}

func showBean(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		name := routing.Param(req, "name")
		res := gohttp.NewResponse(w)
		for _, info := range reg.Beans() {
			if info.ID.Kind() == container.KindNamed && info.ID.Name() == name {
				res.Success(toBean(info))
				return
			}
		}
		res.NotFound("bean not found: " + name)
	}
}
