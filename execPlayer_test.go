package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/assert"
)

func testStreamServer(status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("#EXTM3U\n"))
	}))
}

func TestExecPlayerDataSource(t *testing.T) {
	ep := newExecPlayer("true", nil, time.Second)

	assert.ErrorContains(t, ep.SetDataSource("ftp://example.com/x"), "unsupported data source")
	assert.ErrorContains(t, ep.Prepare(), "no data source")
	assert.ErrorContains(t, ep.Start(), "start before prepare")
}

func TestExecPlayerPrepare(t *testing.T) {
	srv := testStreamServer(http.StatusOK)
	defer srv.Close()

	ep := newExecPlayer("true", nil, time.Second)
	prepared := 0
	ep.SetOnPrepared(func() { prepared++ })

	assert.NilError(t, ep.SetDataSource(srv.URL))
	assert.NilError(t, ep.Prepare())
	assert.Equal(t, prepared, 1)
}

func TestExecPlayerPrepareFails(t *testing.T) {
	srv := testStreamServer(http.StatusNotFound)
	defer srv.Close()

	ep := newExecPlayer("true", nil, time.Second)
	ep.SetOnPrepared(func() { t.Error("prepared after a 404") })

	assert.NilError(t, ep.SetDataSource(srv.URL))
	assert.ErrorContains(t, ep.Prepare(), "404")
	assert.ErrorContains(t, ep.Start(), "start before prepare")
}

func TestExecPlayerCompletion(t *testing.T) {
	srv := testStreamServer(http.StatusOK)
	defer srv.Close()

	// exits right away, like a stream that ended
	ep := newExecPlayer("true", nil, time.Second)
	completed := make(chan struct{})
	ep.SetOnCompletion(func() { close(completed) })

	assert.NilError(t, ep.SetDataSource(srv.URL))
	assert.NilError(t, ep.Prepare())
	assert.NilError(t, ep.Start())

	select {
	case <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("no completion")
	}
	assert.NilError(t, ep.Reset())
}

func TestExecPlayerStop(t *testing.T) {
	srv := testStreamServer(http.StatusOK)
	defer srv.Close()

	// the url lands in $0 and is ignored
	ep := newExecPlayer("sh", []string{"-c", "sleep 30"}, time.Second)
	ep.SetOnCompletion(func() { t.Error("completion after stop") })

	assert.NilError(t, ep.SetDataSource(srv.URL))
	assert.NilError(t, ep.Prepare())
	assert.NilError(t, ep.Start())
	assert.ErrorContains(t, ep.SetDataSource(srv.URL), "player is running")

	assert.NilError(t, ep.Stop())
	assert.NilError(t, ep.Stop())
	assert.NilError(t, ep.Release())
}
