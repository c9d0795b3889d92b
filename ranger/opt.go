package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/vouch/http/middleware"
	"github.com/xy-planning-network/vouch/logger"
	"github.com/xy-planning-network/vouch/valid"
)

// A RangerOption configures a *Ranger under construction.
type RangerOption func(rng *Ranger) error

// WithContext sets the parent of the context every request handled by the Ranger derives from.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return fmt.Errorf("nil context")
		}

		rng.ctx = ctx
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the vouch service.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		if l == nil {
			return fmt.Errorf("nil logger")
		}

		rng.l = l
		rng.l.Debug(fmt.Sprintf("using logger %T", l), nil)
		return nil
	}
}

// WithServer uses s in place of the *http.Server built from config.
// The Ranger sets s.Handler and s.BaseContext.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		if s == nil {
			return fmt.Errorf("nil server")
		}

		rng.srv = s
		return nil
	}
}

// WithValidator uses v to validate every payload extracted, e.g., one carrying custom rules.
func WithValidator(v *valid.Validator) RangerOption {
	return func(rng *Ranger) error {
		if v == nil {
			return fmt.Errorf("nil validator")
		}

		rng.validate = v
		return nil
	}
}

// WithVisitors rate limits requests using vs.
func WithVisitors(vs *middleware.Visitors) RangerOption {
	return func(rng *Ranger) error {
		if vs == nil {
			return fmt.Errorf("nil visitors")
		}

		rng.visitors = vs
		return nil
	}
}
