package main

import (
	"context"
	"net/http"
	"time"
)

type httpStatusService struct {
	srv  *http.Server
	done chan struct{}
}

func (h *httpStatusService) launch(handler *apiHandler, addr string) {
	h.srv = &http.Server{Addr: addr, Handler: handler.routes()}
	h.done = make(chan struct{})

	go func(srv *http.Server, done chan struct{}) {
		defer close(done)
		handler.rt.logger.Printf("starting status http server on %s", addr)
		err := srv.ListenAndServe()
		if err != http.ErrServerClosed {
			handler.rt.logger.Printf("status http server: %v", err)
		}
		handler.rt.logger.Println("exiting status http server")
	}(h.srv, h.done)
}

func (h *httpStatusService) stop() {
	if h.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.srv.Shutdown(ctx)
	<-h.done
	h.srv = nil
}
