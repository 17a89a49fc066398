/*
Package wayfinder is a navigation engine for automated UI-driving agents.

An application is modelled as a set of discrete, observable screens
("navigables") connected by executable transitions. Wayfinder computes the
shortest route between two screens, drives the transitions hop by hop and
confirms each arrival with a cancellable readiness wait.

# Concept

Each screen declares, on its own, which screens it can reach and how (an
opaque action handed over by your UI driver), and how to tell whether it
exists and is ready. The graph is never stored separately: edges are read from
the screens on every query, so the declared topology and the routed one cannot
drift apart.

Waiting is cooperative. Every wait runs under a context: an expired context
yields false immediately, cancellation or timeout yields false, never an
error. Waiting without any cancellation signal is a configuration error
(domain.ErrSignalNotConfigured) unless a default timeout is configured.

# Usage

	login := dsl.New()
	login.Add("login").Ready(loginVisible).Go("home", submitCredentials)
	login.Add("home").Ready(homeVisible).Go("settings", openSettings)
	login.Add("settings").Ready(settingsVisible)

	screens, err := login.Build()
	if err != nil {
		log.Fatal(err)
	}

	session, err := wayfinder.New(screens,
		wayfinder.WithDefaultTimeout(10*time.Second),
		wayfinder.WithStartID("login"),
	)
	if err != nil {
		log.Fatal(err)
	}

	settings, _ := session.Graph().Lookup("settings")
	err = session.Navigate(ctx, settings).
		Do(func(ctx context.Context) error { return toggleDarkMode(ctx) }).
		Err()
	if err != nil {
		// session.Position() is the last screen confirmed ready.
		log.Printf("stuck at %s: %v", domain.IDOf(session.Position()), err)
	}
*/
package wayfinder
