package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type contextKeyClient struct{}

// ClientInfo is the calling application parsed from the User-Agent header,
// so logs and audit events can tell the AR app from a CLI or a crawler.
type ClientInfo struct {
	Name    string
	Version string
	OS      string
	Mobile  bool
	Bot     bool
}

// String renders a compact "Name/Version (OS)" tag; empty when nothing was
// parseable from the header.
func (c ClientInfo) String() string {
	if c.Name == "" {
		return ""
	}
	s := c.Name
	if c.Version != "" {
		s += "/" + c.Version
	}
	if c.OS != "" {
		s += " (" + c.OS + ")"
	}
	return s
}

// ClientMetadata parses the User-Agent and stores the result in the request
// context. Apply early in the chain so every handler and service sees it.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.Header.Get("User-Agent"))
		name, version := ua.Browser()
		info := ClientInfo{
			Name:    name,
			Version: version,
			OS:      ua.OS(),
			Mobile:  ua.Mobile(),
			Bot:     ua.Bot(),
		}
		ctx := context.WithValue(r.Context(), contextKeyClient{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClient returns the parsed client info, zero when the middleware did not
// run.
func GetClient(ctx context.Context) ClientInfo {
	if info, ok := ctx.Value(contextKeyClient{}).(ClientInfo); ok {
		return info
	}
	return ClientInfo{}
}

// WithClient injects client info into a context. For service tests that skip
// the HTTP middleware chain.
func WithClient(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, contextKeyClient{}, info)
}
