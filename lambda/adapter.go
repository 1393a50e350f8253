package lambda

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// Adapter serves API Gateway proxy events through a regular http.Handler.
type Adapter struct {
	proxy *httpadapter.HandlerAdapter
}

func NewAdapter(handler http.Handler) *Adapter {
	return &Adapter{proxy: httpadapter.New(withGatewayContext(handler))}
}

func (a *Adapter) Proxy(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return a.proxy.ProxyWithContext(ctx, event)
}

// withGatewayContext fills the request id and client address from the API Gateway request context.
func withGatewayContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gw, ok := core.GetAPIGatewayContextFromContext(r.Context()); ok {
			if gw.RequestID != "" && r.Header.Get("X-Request-ID") == "" {
				r.Header.Set("X-Request-ID", gw.RequestID)
			}
			if r.RemoteAddr == "" {
				r.RemoteAddr = gw.Identity.SourceIP
			}
		}
		next.ServeHTTP(w, r)
	})
}
