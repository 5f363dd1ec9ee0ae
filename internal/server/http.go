package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopping"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler returns the API routes backed by store. Analytics events
// received on /events are appended to events when it is non-nil.
func NewHandler(store *Store, events *EventLog) http.Handler {
	h := &handler{store: store, events: events}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.lists)
	mux.HandleFunc("GET /providers", h.providers)
	mux.HandleFunc("POST /list/update", h.updateList)
	mux.HandleFunc("POST /purchase", h.purchase)
	mux.HandleFunc("POST /list/create", h.createList)
	mux.HandleFunc("GET /events", h.eventStream)

	return logRequests(mux)
}

type handler struct {
	store  *Store
	events *EventLog
}

func (h *handler) lists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Lists())
}

func (h *handler) providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Providers())
}

func (h *handler) updateList(w http.ResponseWriter, r *http.Request) {
	var update shopping.ListUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	list, err := h.store.Update(update)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	logging.Info("List updated",
		zap.Int("list_id", list.ID),
		zap.String("name", list.Name),
		zap.Int("items", len(list.Items)),
		zap.Int("total", list.TotalAmount()),
	)
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req shopping.PurchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	list, err := h.store.Purchase(req)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	logging.Info("Purchase recorded",
		zap.Int("list_id", list.ID),
		zap.String("provider", req.ProviderID),
	)
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *handler) createList(w http.ResponseWriter, r *http.Request) {
	var req shopping.CreateListRequest
	if !decodeBody(w, r, &req) {
		return
	}

	list, err := h.store.Create(req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	logging.Info("List created", zap.Int("list_id", list.ID), zap.String("name", list.Name))
	writeJSON(w, http.StatusCreated, list)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed request body: %v", err))
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrListNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateName):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUnknownProvider), errors.Is(err, ErrInvalidList):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to write response", zap.Error(err))
	}
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack passes websocket upgrades through to the underlying connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogServerRequest(r.RemoteAddr, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
