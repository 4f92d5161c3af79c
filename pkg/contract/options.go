// pkg/contract/options.go

package contract

import "github.com/Feralthedogg/novum-contract/pkg/state"

// Observer is notified of every violation before it is raised.
// Observers run synchronously on the caller's goroutine.
type Observer interface {
	Observe(v *Violation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(v *Violation)

func (f ObserverFunc) Observe(v *Violation) {
	f(v)
}

type options struct {
	name      string
	sw        *state.Switch
	observers []Observer
}

// Option configures a guarded function at wrap time.
type Option func(*options)

// WithName overrides the diagnostic name derived from the target's symbol.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithSwitch binds the guarded function to s instead of state.Default.
func WithSwitch(s *state.Switch) Option {
	return func(o *options) {
		if s != nil {
			o.sw = s
		}
	}
}

// WithObserver registers observers notified on each violation.
func WithObserver(observers ...Observer) Option {
	return func(o *options) {
		for _, obs := range observers {
			if obs != nil {
				o.observers = append(o.observers, obs)
			}
		}
	}
}

func buildOptions(fn any, opts []Option) options {
	o := options{sw: state.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = funcName(fn)
	}
	return o
}
