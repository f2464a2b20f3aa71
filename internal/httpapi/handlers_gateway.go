package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"gatewayd/internal/channel"
	"gatewayd/internal/observability"
	"gatewayd/internal/routing"
	"gatewayd/pkg/types"
)

// created writes v with 201, or the mapped error.
func created[T any](w http.ResponseWriter, r *http.Request, op string, start time.Time, v T, err error) {
	respond(w, r, op, start, http.StatusCreated, v, err)
}

func respond[T any](w http.ResponseWriter, r *http.Request, op string, start time.Time, status int, v T, err error) {
	if err != nil {
		st := writeError(w, err)
		logOp(r, op, st, start, err)
		return
	}
	writeJSON(w, r, status, v)
	logOp(r, op, status, start, nil)
}

// @Summary  List model services
// @Tags     models
// @Produce  json
// @Success  200 {array} types.ModelService
// @Router   /api/models [get]
func (s *server) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Models.List())
}

// @Summary  Get a model service
// @Tags     models
// @Produce  json
// @Param    id path string true "Model service id"
// @Success  200 {object} types.ModelService
// @Failure  404 {object} types.ErrorResponse
// @Router   /api/models/{id} [get]
func (s *server) getModel(w http.ResponseWriter, r *http.Request) {
	m, err := s.Models.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

// @Summary  Register a model service
// @Tags     models
// @Accept   json
// @Produce  json
// @Param    body body types.ModelService true "Model service"
// @Success  201 {object} types.ModelService
// @Failure  400 {object} types.ErrorResponse
// @Failure  409 {object} types.ErrorResponse
// @Router   /api/models [post]
func (s *server) addModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in types.ModelService
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := s.Models.Add(in)
	created(w, r, "models.add", start, m, err)
}

// @Summary  List rate-limit policies
// @Tags     rate-limits
// @Produce  json
// @Success  200 {array} types.RateLimitPolicy
// @Router   /api/rate-limits [get]
func (s *server) listRateLimits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Limits.List())
}

// @Summary  Add a rate-limit policy
// @Tags     rate-limits
// @Accept   json
// @Produce  json
// @Param    body body types.RateLimitPolicy true "Policy"
// @Success  201 {object} types.RateLimitPolicy
// @Failure  400 {object} types.ErrorResponse
// @Router   /api/rate-limits [post]
func (s *server) addRateLimit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in types.RateLimitPolicy
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := s.Limits.Add(in)
	created(w, r, "rate_limits.add", start, p, err)
}

// @Summary  Update a rate-limit policy
// @Tags     rate-limits
// @Accept   json
// @Produce  json
// @Param    id   path string                true "Policy id"
// @Param    body body types.RateLimitPolicy true "Policy"
// @Success  200 {object} types.RateLimitPolicy
// @Failure  404 {object} types.ErrorResponse
// @Router   /api/rate-limits/{id} [put]
func (s *server) updateRateLimit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in types.RateLimitPolicy
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := s.Limits.Update(chi.URLParam(r, "id"), in)
	respond(w, r, "rate_limits.update", start, http.StatusOK, p, err)
}

// @Summary  List channel models
// @Tags     channels
// @Produce  json
// @Success  200 {array} types.ChannelModel
// @Router   /api/channels [get]
func (s *server) listChannels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Channels.List())
}

// @Summary  Channel weight totals per service
// @Tags     channels
// @Produce  json
// @Success  200 {array} types.ChannelWeightSummary
// @Router   /api/channels/weights [get]
func (s *server) channelWeights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Channels.Weights())
}

// @Summary  Add a channel model
// @Tags     channels
// @Accept   json
// @Produce  json
// @Param    body body channel.Input true "Channel"
// @Success  201 {object} types.ChannelModel
// @Failure  400 {object} types.ErrorResponse
// @Router   /api/channels [post]
func (s *server) addChannel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in channel.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := s.Channels.Add(in)
	created(w, r, "channels.add", start, c, err)
}

// @Summary  Update a channel model
// @Tags     channels
// @Accept   json
// @Produce  json
// @Param    id   path string        true "Channel id"
// @Param    body body channel.Input true "Channel"
// @Success  200 {object} types.ChannelModel
// @Failure  404 {object} types.ErrorResponse
// @Router   /api/channels/{id} [put]
func (s *server) updateChannel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in channel.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := s.Channels.Update(chi.URLParam(r, "id"), in)
	respond(w, r, "channels.update", start, http.StatusOK, c, err)
}

// @Summary  List unified services
// @Tags     services
// @Produce  json
// @Success  200 {array} types.UnifiedService
// @Router   /api/services [get]
func (s *server) listServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Services.List())
}

// @Summary  Add a unified service
// @Tags     services
// @Accept   json
// @Produce  json
// @Param    body body routing.Input true "Service"
// @Success  201 {object} types.UnifiedService
// @Failure  400 {object} types.ErrorResponse
// @Router   /api/services [post]
func (s *server) addService(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in routing.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	svc, err := s.Services.Add(in)
	created(w, r, "services.add", start, svc, err)
}

// @Summary  Update a unified service
// @Tags     services
// @Accept   json
// @Produce  json
// @Param    id   path string        true "Service id"
// @Param    body body routing.Input true "Service"
// @Success  200 {object} types.UnifiedService
// @Failure  404 {object} types.ErrorResponse
// @Router   /api/services/{id} [put]
func (s *server) updateService(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in routing.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	svc, err := s.Services.Update(chi.URLParam(r, "id"), in)
	respond(w, r, "services.update", start, http.StatusOK, svc, err)
}

// @Summary  Observability dashboard
// @Tags     observability
// @Produce  json
// @Param    org     query string false "Organisation"
// @Param    service query string false "Model service name"
// @Param    from    query string false "Range start (RFC3339 or unix seconds)"
// @Param    to      query string false "Range end (RFC3339 or unix seconds)"
// @Success  200 {object} types.DashboardResponse
// @Failure  400 {object} types.ErrorResponse
// @Router   /api/observability [get]
func (s *server) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := observability.Filter{Org: q.Get("org"), Service: q.Get("service")}
	var err error
	if f.From, err = parseTime(q.Get("from")); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid from: "+err.Error())
		return
	}
	if f.To, err = parseTime(q.Get("to")); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid to: "+err.Error())
		return
	}
	resp, err := s.Dashboard.Build(f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// parseTime accepts RFC3339 or unix seconds; empty yields the zero time.
func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}
	return time.Parse(time.RFC3339, v)
}
