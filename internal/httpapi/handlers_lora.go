package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gatewayd/pkg/types"
)

// @Summary     List adapters
// @Description Adapter set with exclusive mode, loaded count and the active adapter.
// @Tags        lora
// @Produce     json
// @Success     200 {object} types.AdapterSetResponse
// @Router      /api/lora [get]
func (s *server) getAdapters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Adapters.Snapshot())
}

// @Summary     Set exclusive mode
// @Description Stores the flag. Adapters already active stay active until the next activation.
// @Tags        lora
// @Accept      json
// @Produce     json
// @Param       body body types.ModeRequest true "Mode"
// @Success     200 {object} types.AdapterSetResponse
// @Failure     400 {object} types.ErrorResponse
// @Router      /api/lora/mode [put]
func (s *server) setMode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req types.ModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Exclusive == nil {
		writeJSONError(w, http.StatusBadRequest, "exclusive is required")
		return
	}
	s.Adapters.SetMode(*req.Exclusive)
	writeJSON(w, r, http.StatusOK, s.Adapters.Snapshot())
	logOp(r, "lora.set_mode", http.StatusOK, start, nil)
}

// @Summary     Activate an adapter
// @Description In exclusive mode makes the adapter the only active one; ignored otherwise.
// @Tags        lora
// @Produce     json
// @Param       id path string true "Adapter id"
// @Success     200 {object} types.AdapterSetResponse
// @Failure     404 {object} types.ErrorResponse
// @Failure     409 {object} types.ErrorResponse
// @Router      /api/lora/adapters/{id}/activate [post]
func (s *server) activate(w http.ResponseWriter, r *http.Request) {
	s.adapterOp(w, r, "lora.activate", s.Adapters.Activate)
}

// @Summary     Load or unload an adapter
// @Tags        lora
// @Produce     json
// @Param       id path string true "Adapter id"
// @Success     200 {object} types.AdapterSetResponse
// @Failure     404 {object} types.ErrorResponse
// @Router      /api/lora/adapters/{id}/toggle-load [post]
func (s *server) toggleLoad(w http.ResponseWriter, r *http.Request) {
	s.adapterOp(w, r, "lora.toggle_load", s.Adapters.ToggleLoad)
}

func (s *server) adapterOp(w http.ResponseWriter, r *http.Request, op string, fn func(string) error) {
	start := time.Now()
	if err := fn(chi.URLParam(r, "id")); err != nil {
		status := writeError(w, err)
		logOp(r, op, status, start, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Adapters.Snapshot())
	logOp(r, op, http.StatusOK, start, nil)
}

// @Summary     Reseed adapters
// @Description Replaces the adapter set with the configured seed. The mode flag is kept.
// @Tags        lora
// @Produce     json
// @Success     200 {object} types.AdapterSetResponse
// @Router      /api/lora/reseed [post]
func (s *server) reseed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var seed []types.Adapter
	if s.Seed != nil {
		var err error
		if seed, err = s.Seed(); err != nil {
			status := writeError(w, err)
			logOp(r, "lora.reseed", status, start, err)
			return
		}
	}
	if err := s.Adapters.Reseed(seed); err != nil {
		status := writeError(w, err)
		logOp(r, "lora.reseed", status, start, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Adapters.Snapshot())
	logOp(r, "lora.reseed", http.StatusOK, start, nil)
}
