package unilabel

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is what RegisterRoutes needs from a router. *http.ServeMux satisfies it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath reports where the component lands when mounted under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts a handler built from fns under basePath and returns
// the subtree pattern it registered.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return New(fns...).RegisterRoutes(mux, basePath)
}

func register(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", errors.New("unilabel: missing mux")
	}
	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return "", err
	}

	// Label routes are matched relative to the mount, so strip it before
	// handing the request over.
	mount := mountPath(basePath, opts.RoutePath)
	mux.Handle(mount+"/", http.StripPrefix(mount, handler))
	return mount + "/", nil
}

// mountPath joins base and route into a clean absolute path. The root mount
// is reported as "" so callers can append "/" without doubling it.
func mountPath(basePath, routePath string) string {
	joined := path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
	if joined == "/" {
		return ""
	}
	return joined
}
