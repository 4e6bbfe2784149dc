package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
)

var wg sync.WaitGroup

// rockfm -config={config file} [-sim]

func main() {
	// read config information
	settings := initSettings()

	logFile, err := setupLogging(settings, settings.GetBool(sSimulated))
	if err != nil {
		log.Fatalf("log setup: %v", err)
	}
	defer logFile.Close()

	// dump them (debugging)
	log.Println(">>> Settings <<<")
	settings.Dump()
	log.Println(">>> Settings <<<")

	rt := initRuntime(settings)

	b, err := openBoard(rt)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	app := newRadio(rt, b)

	go func() {
		if err := <-app.start(); err != nil {
			log.Printf("stream did not start: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runWatchButtons(rt.withLogger("Buttons"), app.input)
	}()

	if rt.settings.GetString(sStatusAddr) != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runStatusService(rt, app)
		}()
	}

	daemon.SdNotify(false, daemon.SdNotifyReady)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigs:
		log.Printf("got %v, shutting down", sig)
	case <-rt.comms.quit:
		log.Println("quit requested, shutting down")
	}

	daemon.SdNotify(false, daemon.SdNotifyStopping)
	rt.comms.shutdown()
	wg.Wait()

	app.close()
	b.close()
	log.Println("bye")
}
