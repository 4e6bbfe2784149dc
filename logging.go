package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger tags every line with the goroutine/component that wrote it
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("["+tl.name+"] "+format, v...)
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("[%s] %s", tl.name, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// journalWriter forwards log lines to the systemd journal
type journalWriter struct {
	identifier string
}

func (jw journalWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	err := journal.Send(msg, journal.PriInfo, map[string]string{
		"SYSLOG_IDENTIFIER": jw.identifier,
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func setupLogging(settings configSettings, toStdout bool) (*lumberjack.Logger, error) {
	logFile := &lumberjack.Logger{
		Filename:   settings.GetString(sLogFile),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	writers := []io.Writer{logFile}
	if toStdout {
		writers = append(writers, os.Stdout)
	}
	if settings.GetBool(sJournal) && journal.Enabled() {
		writers = append(writers, journalWriter{identifier: "rockfm"})
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	// make sure the file can be written now rather than at the first message
	if _, err := logFile.Write([]byte{}); err != nil {
		log.SetOutput(os.Stderr)
		return nil, err
	}
	return logFile, nil
}
