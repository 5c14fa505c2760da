package tuneboxv1connect

import (
	"net/http"

	"connectrpc.com/connect"

	tuneboxv1 "github.com/osa030/tunebox/internal/api/tuneboxv1"
)

// router dispatches a service path prefix to its procedure handlers.
func router(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// withCodec puts the JSON codec ahead of caller options.
func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(tuneboxv1.Codec{})}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(tuneboxv1.Codec{})}, opts...)
}
