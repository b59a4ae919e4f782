package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/auth"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/jwt"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/sse"
)

const streamKeepalive = 30 * time.Second

type DashboardHandler interface {
	// GetDashboard returns the composed snapshot, reusing the last load of the same window
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// Refresh forces a new load of the viewer's board
	Refresh(w http.ResponseWriter, r *http.Request)
	// GetMap returns markers and bounds of the located rows
	GetMap(w http.ResponseWriter, r *http.Request)
	// GetChart returns per-day event counts
	GetChart(w http.ResponseWriter, r *http.Request)
	// GetStreamToken issues the short-lived token EventSource connects with
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	// Stream pushes a fresh snapshot whenever the board is reloaded
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	jwtService       jwt.Service
	locale           format.Locale
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, jwtService jwt.Service, locale format.Locale) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		jwtService:       jwtService,
		locale:           locale,
	}
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := parseDashboardRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.Current(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard.NewSnapshotResponse(view, h.locale))
}

// Refresh handles POST /dashboard/refresh
func (h *dashboardHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	req, err := parseDashboardRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.Load(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard.NewSnapshotResponse(view, h.locale))
}

// GetMap handles GET /dashboard/map
func (h *dashboardHandlerImpl) GetMap(w http.ResponseWriter, r *http.Request) {
	req, err := parseDashboardRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.Markers(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetChart handles GET /dashboard/chart
func (h *dashboardHandlerImpl) GetChart(w http.ResponseWriter, r *http.Request) {
	req, err := parseChartRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.Chart(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStreamToken handles POST /dashboard/stream/token
func (h *dashboardHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.HandleError(w, auth.ErrMissingIdentity)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles GET /dashboard/stream
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, the token comes in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	req, err := parseDashboardRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.dashboardService.Subscribe(userID)
	defer cleanup()

	ctx := r.Context()
	if err := sse.WriteEvent(w, sse.Event{
		Event: sse.EventConnected,
		Data:  map[string]string{"status": "connected", "user_id": userID},
	}); err != nil {
		return
	}
	flusher.Flush()

	var lastToken uint64
	sendSnapshot := func() bool {
		view, err := h.dashboardService.Current(ctx, userID, req)
		if err != nil {
			slog.Error("Failed to compose streamed dashboard", "user_id", userID, "error", err)
			return true
		}
		if view.Token != 0 && view.Token == lastToken {
			return true
		}
		lastToken = view.Token
		if err := sse.WriteEvent(w, sse.Event{
			Event: sse.EventSnapshot,
			Data:  dashboard.NewSnapshotResponse(view, h.locale),
		}); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !sendSnapshot() {
		return
	}

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Event != sse.EventRefreshed {
				continue
			}
			if !sendSnapshot() {
				return
			}

		case <-keepalive.C:
			if err := sse.WriteEvent(w, sse.Event{
				Event: sse.EventPing,
				Data:  map[string]int64{"timestamp": time.Now().Unix()},
			}); err != nil {
				return
			}
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}
