// pkg/contract/wrap.go

package contract

// Wrap0 guards a function without parameters.
func Wrap0[R any](fn func() R, c Contract[None, R], opts ...Option) func() R {
	g := newGuard(fn, c, opts)
	return func() R {
		return must(g.run(None{},
			func() []any { return []any{} },
			func() (R, error) { return fn(), nil },
		))
	}
}

// Wrap guards a single-parameter function. Violations panic with a *Violation.
func Wrap[A, R any](fn func(A) R, c Contract[A, R], opts ...Option) func(A) R {
	g := newGuard(fn, c, opts)
	return func(a A) R {
		return must(g.run(a,
			func() []any { return []any{a} },
			func() (R, error) { return fn(a), nil },
		))
	}
}

// Wrap2 guards a two-parameter function. The precondition sees the arguments
// as a Pair.
func Wrap2[T1, T2, R any](fn func(T1, T2) R, c Contract[Pair[T1, T2], R], opts ...Option) func(T1, T2) R {
	g := newGuard(fn, c, opts)
	return func(a T1, b T2) R {
		return must(g.run(Pair[T1, T2]{First: a, Second: b},
			func() []any { return []any{a, b} },
			func() (R, error) { return fn(a, b), nil },
		))
	}
}

// Wrap3 guards a three-parameter function.
func Wrap3[T1, T2, T3, R any](fn func(T1, T2, T3) R, c Contract[Triple[T1, T2, T3], R], opts ...Option) func(T1, T2, T3) R {
	g := newGuard(fn, c, opts)
	return func(a T1, b T2, d T3) R {
		return must(g.run(Triple[T1, T2, T3]{First: a, Second: b, Third: d},
			func() []any { return []any{a, b, d} },
			func() (R, error) { return fn(a, b, d), nil },
		))
	}
}

// WrapErr guards a fallible single-parameter function. Violations are returned
// as the error; errors from fn are returned unchanged and skip the post
// condition and invariant.
func WrapErr[A, R any](fn func(A) (R, error), c Contract[A, R], opts ...Option) func(A) (R, error) {
	g := newGuard(fn, c, opts)
	return func(a A) (R, error) {
		return g.run(a,
			func() []any { return []any{a} },
			func() (R, error) { return fn(a) },
		)
	}
}

// WrapErr2 is WrapErr for two-parameter functions.
func WrapErr2[T1, T2, R any](fn func(T1, T2) (R, error), c Contract[Pair[T1, T2], R], opts ...Option) func(T1, T2) (R, error) {
	g := newGuard(fn, c, opts)
	return func(a T1, b T2) (R, error) {
		return g.run(Pair[T1, T2]{First: a, Second: b},
			func() []any { return []any{a, b} },
			func() (R, error) { return fn(a, b) },
		)
	}
}
