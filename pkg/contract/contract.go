// pkg/contract/contract.go

// Package contract binds functions to design-by-contract checks.
//
// A guarded function evaluates its contract on every call, in this order:
// precondition, target, postcondition, invariant. The first clause that
// evaluates to false raises a *Violation. When the bound switch is disabled the
// target is called directly and no predicate runs.
//
// Wrappers that keep a plain signature raise violations by panicking with the
// *Violation; the WrapErr family returns it as the error instead.
package contract

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/Feralthedogg/novum-contract/pkg/state"
)

// PreFunc receives the exact arguments of the call.
type PreFunc[A any] func(args A) bool

// PostFunc receives the value produced by the target.
type PostFunc[R any] func(result R) bool

// InvariantFunc inspects ambient state after the target ran.
type InvariantFunc func() bool

// Contract describes the checks around a target. Nil clauses are skipped.
type Contract[A, R any] struct {
	Pre       PreFunc[A]
	Post      PostFunc[R]
	Invariant InvariantFunc
}

// None is the argument tuple of a function without parameters.
type None struct{}

// Pair is the argument tuple of a two-parameter function.
type Pair[T1, T2 any] struct {
	First  T1
	Second T2
}

// Triple is the argument tuple of a three-parameter function.
type Triple[T1, T2, T3 any] struct {
	First  T1
	Second T2
	Third  T3
}

// Enable turns checking on for every function bound to state.Default.
func Enable() {
	state.Default.Enable()
}

// Disable turns checking off for every function bound to state.Default.
func Disable() {
	state.Default.Disable()
}

// Enabled reports the mode of state.Default.
func Enabled() bool {
	return state.Default.Enabled()
}

type guard[A, R any] struct {
	name      string
	contract  Contract[A, R]
	sw        *state.Switch
	observers []Observer
}

func newGuard[A, R any](fn any, c Contract[A, R], opts []Option) *guard[A, R] {
	o := buildOptions(fn, opts)
	return &guard[A, R]{
		name:      o.name,
		contract:  c,
		sw:        o.sw,
		observers: o.observers,
	}
}

// run performs one checked call. Errors returned by invoke pass through
// untouched and skip the remaining clauses.
func (g *guard[A, R]) run(args A, snapshot func() []any, invoke func() (R, error)) (R, error) {
	if !g.sw.Enabled() {
		return invoke()
	}

	var zero R
	if g.contract.Pre != nil && !g.contract.Pre(args) {
		return zero, g.violate(&Violation{
			Kind:     Precondition,
			Function: g.name,
			Args:     snapshot(),
		})
	}

	result, err := invoke()
	if err != nil {
		return result, err
	}

	if g.contract.Post != nil && !g.contract.Post(result) {
		return zero, g.violate(&Violation{
			Kind:      Postcondition,
			Function:  g.name,
			Args:      snapshot(),
			Result:    result,
			HasResult: true,
		})
	}

	if g.contract.Invariant != nil && !g.contract.Invariant() {
		return zero, g.violate(&Violation{
			Kind:     Invariant,
			Function: g.name,
		})
	}

	return result, nil
}

func (g *guard[A, R]) violate(v *Violation) *Violation {
	for _, obs := range g.observers {
		obs.Observe(v)
	}
	return v
}

// must unwraps the result of a call whose target cannot fail.
func must[R any](result R, err error) R {
	if err != nil {
		panic(err)
	}
	return result
}

// funcName derives a diagnostic name from fn's runtime symbol, without the
// package path.
func funcName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return "<unknown>"
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return "<unknown>"
	}
	return shortName(f.Name())
}

// shortName strips the import path and package name from a symbol such as
// "gopkg.in/yaml.v3.(*Decoder).Decode". A dotted last path element may appear
// escaped ("yaml%2ev3") or literal; literal version suffixes are skipped.
func shortName(symbol string) string {
	if i := strings.LastIndex(symbol, "/"); i >= 0 {
		symbol = symbol[i+1:]
	}
	parts := strings.Split(symbol, ".")
	if len(parts) < 2 {
		return strings.TrimSuffix(symbol, "-fm")
	}
	parts = parts[1:]
	for len(parts) > 1 && isVersion(parts[0]) {
		parts = parts[1:]
	}
	return strings.TrimSuffix(strings.Join(parts, "."), "-fm")
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
