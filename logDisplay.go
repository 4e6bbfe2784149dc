package main

import (
	"log"
	"sync"

	"github.com/pkg/errors"
)

type logDisplay struct {
	mu         sync.Mutex
	curDisplay string
	debugDump  bool
	brightness uint8
	displayOn  bool
	open       bool
	openFail   bool
	printFail  bool
	audit      []string
}

func (ld *logDisplay) OpenDisplay(settings configSettings) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if ld.openFail {
		return errors.New("Bad display open")
	}
	ld.curDisplay = ""
	ld.debugDump = settings.GetBool(sDebug)
	ld.brightness = 0
	ld.displayOn = false
	ld.open = true
	ld.audit = []string{}
	return nil
}

func (ld *logDisplay) DebugDump(on bool) {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.debugDump = on
}

func (ld *logDisplay) SetBrightness(b uint8) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.brightness = b
	return nil
}

func (ld *logDisplay) DisplayOn(on bool) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.displayOn = on
	return nil
}

// Print keeps every write in the audit, it only logs changes
func (ld *logDisplay) Print(e string) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if ld.printFail {
		return errors.New("Bad display write")
	}
	if e != ld.curDisplay && ld.debugDump {
		log.Printf("display: [%-4s]", e)
	}
	ld.audit = append(ld.audit, e)
	ld.curDisplay = e
	return nil
}

func (ld *logDisplay) ClearDisplay() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.curDisplay = ""
	return nil
}

func (ld *logDisplay) Close() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.open = false
	return nil
}

func (ld *logDisplay) getAudit() []string {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return append([]string{}, ld.audit...)
}

func (ld *logDisplay) getDisplay() string {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.curDisplay
}

func (ld *logDisplay) isOn() bool {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.displayOn
}
