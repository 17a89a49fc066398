/*
Package dsl provides a fluent builder for declaring screens in Go.

It produces func-backed navigables (Screen) whose probes and transition
actions are plain closures over your UI driver. Targets are referenced by ID
and resolved at Build time, so screens can be declared in any order.

Example usage:

	b := dsl.New()

	b.Add("login").
		Ready(func(ctx context.Context) (bool, error) { return drv.Visible(ctx, "#login") }).
		Go("home", func(ctx context.Context) error { return drv.Click(ctx, "#submit") }).
		Label("submit credentials")

	b.Add("home").
		Ready(func(ctx context.Context) (bool, error) { return drv.Visible(ctx, "#feed") })

	screens, err := b.Build()
	// ... pass screens to wayfinder.New(...)
*/
package dsl
