// Package csp builds Content-Security-Policy headers and applies them to HTTP responses.
package csp

import (
	"net/http"
	"strings"
)

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the rendering order so equal policies render identically.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Policy is a set of CSP directives.
// It is not safe for concurrent mutation; build it once and share it read-only.
type Policy struct {
	directives map[string][]string
	reportOnly bool
}

// New returns an empty policy.
func New() *Policy {
	return &Policy{directives: make(map[string][]string)}
}

// Set replaces the sources of directive. Directives outside the known set are ignored by Build.
func (p *Policy) Set(directive string, sources ...string) *Policy {
	p.directives[directive] = append([]string(nil), sources...)
	return p
}

// ReportOnly switches the policy between enforcing and report-only mode.
func (p *Policy) ReportOnly(enabled bool) *Policy {
	p.reportOnly = enabled
	return p
}

// Build renders the header value, e.g. "default-src 'none'; frame-ancestors 'none'".
func (p *Policy) Build() string {
	parts := make([]string, 0, len(p.directives))
	for _, directive := range directiveOrder {
		if sources := p.directives[directive]; len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the enforcing or report-only header name.
func (p *Policy) HeaderName() string {
	if p.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// APIPolicy suits JSON endpoints that never render markup.
func APIPolicy() *Policy {
	return New().
		Set("default-src", "'none'").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'none'").
		Set("form-action", "'none'")
}

// PagePolicy suits the server-rendered home page: same-origin images and
// styles only, no scripts, no framing.
func PagePolicy() *Policy {
	return New().
		Set("default-src", "'none'").
		Set("style-src", "'self'").
		Set("img-src", "'self'", "data:").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'none'").
		Set("form-action", "'none'").
		Set("object-src", "'none'")
}

// Middleware sets the policy header, and X-Content-Type-Options: nosniff,
// before calling next. A handler further in may replace the header.
func Middleware(p *Policy) func(http.Handler) http.Handler {
	name, value := p.HeaderName(), p.Build()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if value != "" {
				w.Header().Set(name, value)
			}
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	}
}
