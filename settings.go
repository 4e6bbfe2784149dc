package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// setting names
const (
	sStreamURL         = "streamURL"
	sStationName       = "stationName"
	sStripLength       = "stripLength"
	sStripBrightness   = "stripBrightness"
	sScrollInterval    = "scrollInterval"
	sButtonSleep       = "buttonSleep"
	sBtnVolumeUp       = "btnVolumeUp"
	sBtnVolumeDown     = "btnVolumeDown"
	sBtnMute           = "btnMute"
	sLedVolumeUp       = "ledVolumeUp"
	sLedVolumeDown     = "ledVolumeDown"
	sLedMute           = "ledMute"
	sI2CBus            = "i2cBus"
	sDisplayAddr       = "displayAddr"
	sDisplayBrightness = "displayBrightness"
	sSPIPort           = "spiPort"
	sSimulated         = "simulated"
	sButtonInput       = "buttonInput"
	sDebug             = "debugDump"
	sLogFile           = "logFile"
	sJournal           = "journal"
	sStatusAddr        = "statusAddr"
	sStatusUser        = "statusUser"
	sStatusSecret      = "statusSecret"
	sPlayerCommand     = "playerCommand"
	sPlayerArgs        = "playerArgs"
	sPrepareTimeout    = "prepareTimeout"
	sMixerControl      = "mixerControl"
	sMaxVolume         = "maxVolume"
	sInitialVolume     = "initialVolume"
)

// values for sButtonInput
const (
	inputGPIO     = "gpio"
	inputKeyboard = "keyboard"
	inputNone     = "none"
)

const defaultConfigFile = "/etc/default/rockfm/rockfm.conf"

// the display has four characters, that is not something a config file can change
const displayWidth = 4

type buttonMap struct {
	pinNum int
	pullup bool
	key    string
}

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sStreamURL] = "http://rockfm.cope.stream.flumotion.com/cope/rockfm/playlist.m3u8"
	s[sStationName] = "ROCK FM"
	s[sStripLength] = 7
	s[sStripBrightness] = 1 // APA102 global brightness, 0-31
	s[sScrollInterval] = 400 * time.Millisecond
	s[sButtonSleep] = 10 * time.Millisecond

	// buttons are pressed when low, the keys match the keyboard simulation
	s[sBtnVolumeUp] = buttonMap{pinNum: 16, pullup: true, key: "c"}
	s[sBtnVolumeDown] = buttonMap{pinNum: 20, pullup: true, key: "b"}
	s[sBtnMute] = buttonMap{pinNum: 21, pullup: true, key: "a"}
	s[sLedVolumeUp] = 26
	s[sLedVolumeDown] = 19
	s[sLedMute] = 6

	s[sI2CBus] = "I2C1"
	s[sDisplayAddr] = byte(0x70)
	s[sDisplayBrightness] = byte(15)
	s[sSPIPort] = "SPI0.0"

	s[sButtonInput] = inputGPIO
	s[sDebug] = false
	s[sLogFile] = "/var/log/rockfm.log"
	s[sJournal] = true

	s[sStatusAddr] = ":8080"
	s[sStatusUser] = "rockfm"
	s[sStatusSecret] = ""

	s[sPlayerCommand] = "ffplay"
	s[sPlayerArgs] = "-nodisp -loglevel error"
	s[sPrepareTimeout] = 30 * time.Second
	s[sMixerControl] = "Master"
	s[sMaxVolume] = 15
	s[sInitialVolume] = 5

	sim := true
	if runtime.GOARCH == "arm" || runtime.GOARCH == "arm64" {
		sim = false
	}
	s[sSimulated] = sim
	if sim {
		s[sButtonInput] = inputKeyboard
	}

	return configSettings{settings: s}
}

func buttonMapFromJSON(data []byte, k string) (buttonMap, error) {
	var bm buttonMap
	pin, err := jsonparser.GetInt(data, k, "pin")
	if err != nil {
		return bm, errors.Wrapf(err, "%s.pin", k)
	}
	bm.pinNum = int(pin)
	bm.pullup, err = jsonparser.GetBoolean(data, k, "pullup")
	if err != nil {
		// pressed-when-low unless told otherwise
		bm.pullup = true
	}
	bm.key, _ = jsonparser.GetString(data, k, "key")
	return bm, nil
}

func (s configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err != nil {
				// allow "0x70"
				var valString string
				valString, err = jsonparser.GetString(data, k)
				if err == nil {
					val, err = strconv.ParseInt(valString, 0, 64)
				}
			}
			if err == nil && (val < 0 || val > 0xff) {
				err = fmt.Errorf("%s out of range: %d", k, val)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k] = str
			}
		case buttonMap:
			var bm buttonMap
			bm, err = buttonMapFromJSON(data, k)
			if err == nil {
				s.settings[k] = bm
			}
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return s.validate()
}

// validate rejects values the hardware loops can't run with
func (s configSettings) validate() error {
	for _, k := range []string{sStripLength, sMaxVolume} {
		if s.GetInt(k) < 1 {
			return errors.Errorf("setting %s must be at least 1, got %d", k, s.GetInt(k))
		}
	}
	for _, k := range []string{sScrollInterval, sButtonSleep, sPrepareTimeout} {
		if s.GetDuration(k) <= 0 {
			return errors.Errorf("setting %s must be positive, got %v", k, s.GetDuration(k))
		}
	}
	if s.GetInt(sStripBrightness) < 0 || s.GetInt(sStripBrightness) > 31 {
		return errors.Errorf("setting %s must be 0-31, got %d", sStripBrightness, s.GetInt(sStripBrightness))
	}
	return nil
}

func initSettings() configSettings {
	s := defaultSettings()

	// define our flags first
	configFile := flag.String("config", defaultConfigFile, "config file path")
	simulated := flag.Bool("sim", false, "force simulated hardware")

	// parse the flags
	flag.Parse()

	data, err := ioutil.ReadFile(*configFile)
	if err != nil {
		// the default file is optional, one asked for by name is not
		if *configFile != defaultConfigFile || !os.IsNotExist(err) {
			log.Fatalf("Could not load conf file '%s', terminating", *configFile)
		}
		log.Printf("No config file at '%s', using defaults", *configFile)
	} else {
		log.Printf("Reading configuration from '%s'", *configFile)
		if err := s.settingsFromJSON(data); err != nil {
			log.Fatal(err.Error())
		}
	}

	if *simulated {
		s.settings[sSimulated] = true
		if s.GetString(sButtonInput) == inputGPIO {
			s.settings[sButtonInput] = inputKeyboard
		}
	}

	return s
}

// copy makes a settings object that can be changed without touching this one
func (s configSettings) copy() configSettings {
	c := make(map[string]interface{}, len(s.settings))
	for k, v := range s.settings {
		c[k] = v
	}
	return configSettings{settings: c}
}

func (s configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

func (s configSettings) GetButtonMap(key string) buttonMap {
	switch v := s.settings[key].(type) {
	case buttonMap:
		return v
	default:
		return buttonMap{}
	}
}

func (s configSettings) GetAllButtonNames() []string {
	return []string{sBtnVolumeUp, sBtnVolumeDown, sBtnMute}
}

func (s configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == sStatusSecret {
			log.Printf("%s : <hidden>", k)
			continue
		}
		log.Printf("%s : %T: %v", k, s.settings[k], s.settings[k])
	}
}
