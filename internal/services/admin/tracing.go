package admin

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// requestSpanOperation names the server handler in otelhttp metrics.
const requestSpanOperation = "travel-admin"

// withRequestSpan opens a server span per request, continuing any propagated
// trace, and records the response status.
func withRequestSpan(next http.Handler) http.Handler {
	return requestSpanHandler(next)
}

func requestSpanHandler(next http.Handler, opts ...otelhttp.Option) http.Handler {
	opts = append([]otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	}, opts...)
	return otelhttp.NewHandler(next, requestSpanOperation, opts...)
}
