package main

import (
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os/exec"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// execPlayer plays the stream with an external player process
type execPlayer struct {
	mu           sync.Mutex
	command      string
	args         []string
	client       *http.Client
	url          string
	prepared     bool
	run          *playerRun
	onPrepared   func()
	onCompletion func()
	logger       flogger
}

// one process, stopped is set when we killed it
type playerRun struct {
	cmd     *exec.Cmd
	stopped bool
	done    chan struct{}
}

func newExecPlayer(command string, args []string, timeout time.Duration) *execPlayer {
	if timeout < 0 {
		timeout = 0
	}
	return &execPlayer{
		command: command,
		args:    args,
		client:  &http.Client{Timeout: timeout},
		logger:  &ThreadLogger{name: "Player"},
	}
}

func (ep *execPlayer) SetDataSource(source string) error {
	u, err := url.Parse(source)
	if err != nil {
		return errors.Wrap(err, "data source")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("unsupported data source %q", source)
	}

	ep.mu.Lock()
	defer ep.mu.Unlock()
	if ep.run != nil {
		return errors.New("player is running")
	}
	ep.url = source
	ep.prepared = false
	return nil
}

func (ep *execPlayer) SetOnPrepared(f func()) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.onPrepared = f
}

func (ep *execPlayer) SetOnCompletion(f func()) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.onCompletion = f
}

// Prepare checks the stream answers before a process is started for it
func (ep *execPlayer) Prepare() error {
	ep.mu.Lock()
	source := ep.url
	ep.mu.Unlock()
	if source == "" {
		return errors.New("no data source")
	}

	resp, err := ep.client.Get(source)
	if err != nil {
		return errors.Wrap(err, "check stream")
	}
	// a live stream never ends, only look at the start of it
	io.CopyN(ioutil.Discard, resp.Body, 512)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("check stream %s: %s", source, resp.Status)
	}

	ep.mu.Lock()
	ep.prepared = true
	cb := ep.onPrepared
	ep.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

func (ep *execPlayer) Start() error {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if !ep.prepared {
		return errors.New("start before prepare")
	}
	if ep.run != nil {
		return nil
	}

	cmd := exec.Command(ep.command, append(append([]string{}, ep.args...), ep.url)...)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start %s", ep.command)
	}
	run := &playerRun{cmd: cmd, done: make(chan struct{})}
	ep.run = run
	go ep.wait(run)
	return nil
}

func (ep *execPlayer) wait(run *playerRun) {
	err := run.cmd.Wait()
	close(run.done)

	ep.mu.Lock()
	if ep.run == run {
		ep.run = nil
	}
	stopped := run.stopped
	cb := ep.onCompletion
	ep.mu.Unlock()

	if stopped {
		return
	}
	ep.logger.Printf("%s exited: %v", ep.command, err)
	if cb != nil {
		cb()
	}
}

// Stop kills the player and waits for it to go away
func (ep *execPlayer) Stop() error {
	ep.mu.Lock()
	run := ep.run
	if run == nil {
		ep.mu.Unlock()
		return nil
	}
	run.stopped = true
	ep.run = nil
	ep.mu.Unlock()

	err := run.cmd.Process.Kill()
	<-run.done
	return err
}

func (ep *execPlayer) Reset() error {
	err := ep.Stop()
	ep.mu.Lock()
	ep.url = ""
	ep.prepared = false
	ep.mu.Unlock()
	return err
}

func (ep *execPlayer) Release() error {
	err := ep.Reset()
	ep.mu.Lock()
	ep.onPrepared = nil
	ep.onCompletion = nil
	ep.mu.Unlock()
	return err
}
