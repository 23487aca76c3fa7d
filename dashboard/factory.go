package dashboard

import (
	"context"
	"net/url"
	"time"

	"github.com/coreybb/newsdash/loader"
	"github.com/coreybb/newsdash/render"
)

// Factory opens independent controllers over one shared loader.
type Factory struct {
	Loader   loader.Loader
	Renderer *render.Renderer
	Clock    func() time.Time
}

// Open initialises a controller and applies the filter parameters in q.
// The returned error is the load error; the controller is usable either way.
func (f Factory) Open(ctx context.Context, q url.Values) (*Controller, error) {
	var opts []Option
	if f.Clock != nil {
		opts = append(opts, WithClock(f.Clock))
	}
	c := New(f.Loader, f.Renderer, opts...)
	err := c.Init(ctx)
	if len(q) > 0 {
		c.ApplyQuery(q)
	}
	return c, err
}
