package resolver

import (
	"context"
	"net/url"
)

// ResultsRoutePrefix is the results view route; the escaped SOC code follows it
const ResultsRoutePrefix = "/results/"

// Navigation is handed to the Navigator after a successful resolution. The
// report itself sits in the session's handoff slot.
type Navigation struct {
	Path    string `json:"path"`
	SOCCode string `json:"soc_code"`
	Session string `json:"session"`
}

// ResultsPath builds the results route for an occupation code
func ResultsPath(socCode string) string {
	return ResultsRoutePrefix + url.PathEscape(socCode)
}

// Navigator moves the client to the results view
type Navigator interface {
	Navigate(ctx context.Context, nav Navigation) error
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(ctx context.Context, nav Navigation) error

func (f NavigatorFunc) Navigate(ctx context.Context, nav Navigation) error {
	return f(ctx, nav)
}
