package main

import (
	"sync"
	"time"
	"unicode/utf8"
)

// displayController is the only writer to the display. Text that fits is
// printed as is, longer text scrolls through the window until replaced.
type displayController struct {
	mu       sync.Mutex
	rt       runtimeConfig
	disp     optional[display]
	width    int
	interval time.Duration
	text     string
	scroll   *scrollTask
}

type scrollTask struct {
	stop      chan struct{}
	done      chan struct{}
	cancelled bool // guarded by displayController.mu
}

func newDisplayController(rt runtimeConfig, disp optional[display]) *displayController {
	return &displayController{
		rt:       rt.withLogger("Display"),
		disp:     disp,
		width:    displayWidth,
		interval: rt.settings.GetDuration(sScrollInterval),
	}
}

// show replaces whatever is on the display. Once it returns no frame of an
// earlier scroll will be written.
func (dc *displayController) show(text string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.cancelScroll()
	dc.text = text

	d, ok := dc.disp.get()
	if !ok {
		return
	}
	if err := d.ClearDisplay(); err != nil {
		dc.writeFailed("clear", err)
	}
	// widths are in characters, not bytes
	if utf8.RuneCountInString(text) <= dc.width {
		dc.print(d, text)
		return
	}

	task := &scrollTask{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	dc.scroll = task
	go dc.runScroll(task, d, []rune("   "+text+" "))
}

// cancelScroll needs dc.mu
func (dc *displayController) cancelScroll() {
	if dc.scroll == nil {
		return
	}
	dc.scroll.cancelled = true
	close(dc.scroll.stop)
	dc.scroll = nil
}

func (dc *displayController) window(padded []rune, offset int) string {
	end := offset + dc.width
	if end > len(padded) {
		end = len(padded)
	}
	return string(padded[offset:end])
}

func (dc *displayController) runScroll(task *scrollTask, d display, padded []rune) {
	defer close(task.done)

	for {
		for i := 0; i < len(padded)-1; i++ {
			if !dc.writeFrame(task, d, dc.window(padded, i)) {
				return
			}
			select {
			case <-task.stop:
				return
			case <-dc.rt.clock.After(dc.interval):
			}
		}
	}
}

func (dc *displayController) writeFrame(task *scrollTask, d display, frame string) bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if task.cancelled {
		return false
	}
	dc.print(d, frame)
	return true
}

// print needs dc.mu
func (dc *displayController) print(d display, s string) {
	if err := d.Print(s); err != nil {
		dc.writeFailed("print "+s, err)
		return
	}
	dc.rt.metrics.displayWrites.Inc()
}

func (dc *displayController) writeFailed(op string, err error) {
	err = transientIO("display "+op, err)
	dc.rt.logger.Printf("%v", err)
	dc.rt.metrics.failure(err)
}

// current is the text last asked for, scrolling or not
func (dc *displayController) current() string {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.text
}

func (dc *displayController) scrolling() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.scroll != nil
}

// close stops any scroll and waits for it to exit
func (dc *displayController) close() {
	dc.mu.Lock()
	task := dc.scroll
	dc.cancelScroll()
	dc.mu.Unlock()

	if task != nil {
		<-task.done
	}
}
