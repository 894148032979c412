// Package server wraps an http.Server around a handler with graceful
// shutdown, optional CORS handling, and optional HTTP/2 cleartext support.
//
// The dispatch core never depends on this package; it exists so programs
// serving a dispatcher do not repeat the lifecycle plumbing:
//
//	srv, err := server.New(server.Config{
//	    Addr:    ":8080",
//	    Handler: d,
//	    CORS:    &cors.Options{},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until the context is canceled, then drains in-flight requests
// within the configured shutdown timeout.
package server
