package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// apiHandler serves the status API for one radio
type apiHandler struct {
	rt     runtimeConfig
	radio  *radio
	secret string
	user   string
	realm  string
}

// volume commands map to the buttons that would issue them
var apiCommands = map[string]string{
	"up":   sBtnVolumeUp,
	"down": sBtnVolumeDown,
	"mute": sBtnMute,
}

type apiResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func newAPIHandler(rt runtimeConfig, r *radio) *apiHandler {
	secret := rt.settings.GetString(sStatusSecret)
	if secret == "" {
		secret = randomSecret()
		rt.logger.Printf("no %s set, generated %s", sStatusSecret, secret)
	}
	return &apiHandler{
		rt:     rt,
		radio:  r,
		secret: secret,
		user:   rt.settings.GetString(sStatusUser),
		realm:  "rockfm",
	}
}

func randomSecret() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "rockfm"
	}
	return hex.EncodeToString(b)
}

// BasicAuth - provide a middleware to authenticate users
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAnswer(w http.ResponseWriter, status int, v interface{}) {
	output, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, http.StatusOK, m.radio.status())
}

func (m *apiHandler) apiVolume(w http.ResponseWriter, r *http.Request) {
	name, ok := apiCommands[mux.Vars(r)["cmd"]]
	if !ok || !m.radio.input.click(name) {
		writeAnswer(w, http.StatusNotFound, apiResponse{Response: "BAD", Error: "unknown command"})
		return
	}
	writeAnswer(w, http.StatusOK, m.radio.status())
}

func (m *apiHandler) apiStreamStart(w http.ResponseWriter, r *http.Request) {
	if _, ok := m.radio.playback.restart(); !ok {
		state, _ := m.radio.playback.status()
		writeAnswer(w, http.StatusConflict, apiResponse{Response: "BAD", Error: "stream is " + state.String()})
		return
	}
	writeAnswer(w, http.StatusAccepted, apiResponse{Response: "OK"})
}

// routes builds the API router, /metrics stays outside the auth
func (m *apiHandler) routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(m.BasicAuth)
	api.HandleFunc("/status", m.apiStatus).Methods("GET")
	api.HandleFunc("/volume/{cmd}", m.apiVolume).Methods("POST")
	api.HandleFunc("/stream/start", m.apiStreamStart).Methods("POST")

	r.Handle("/metrics", m.rt.metrics.handler()).Methods("GET")
	return r
}

// runStatusService serves until quit closes
func runStatusService(rt runtimeConfig, r *radio) {
	rt = rt.withLogger("Status")
	handler := newAPIHandler(rt, r)

	addr := rt.settings.GetString(sStatusAddr)
	rt.statusService.launch(handler, addr)

	<-rt.comms.quit
	rt.logger.Println("quit from status service")
	rt.statusService.stop()
}
