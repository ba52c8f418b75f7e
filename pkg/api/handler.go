package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/budcare/budcare-registry/pkg/kit"
	"github.com/budcare/budcare-registry/pkg/strains"
)

// NewRouter returns an http.Handler with all registry API routes.
// Every endpoint runs behind logging and panic-recovery middleware.
func NewRouter(svc *Service) http.Handler {
	logger := slog.Default()
	wrap := func(op string, e kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Recover(logger), kit.Logging(logger, op))(e)
	}

	mux := http.NewServeMux()
	h := &handler{
		strainInfo:  wrap("strain_info", strainInfoEndpoint(svc)),
		listStrains: wrap("list_strains", listStrainsEndpoint(svc)),
		clinicInfo:  wrap("clinic_info", clinicInfoEndpoint(svc)),
		listClinics: wrap("list_clinics", listClinicsEndpoint(svc)),
		reload:      wrap("reload", reloadEndpoint(svc)),
		push:        wrap("push", pushEndpoint(svc)),
		svc:         svc,
	}

	mux.HandleFunc("GET /v1/strains", h.handleListStrains)
	mux.HandleFunc("GET /v1/strains/{query}", h.handleStrainInfo)
	mux.HandleFunc("GET /v1/clinics", h.handleListClinics)
	mux.HandleFunc("GET /v1/clinics/{location}", h.handleClinicInfo)
	mux.HandleFunc("POST /v1/push/{target}", h.handlePush)
	mux.HandleFunc("POST /v1/reload", h.handleReload)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestContext(mux))
}

// requestContext tags every HTTP request with a transport marker and a
// fresh request ID for the endpoint middleware to log.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		ctx = kit.WithRequestID(ctx, kit.NewRequestID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type handler struct {
	strainInfo  kit.Endpoint
	listStrains kit.Endpoint
	clinicInfo  kit.Endpoint
	listClinics kit.Endpoint
	reload      kit.Endpoint
	push        kit.Endpoint
	svc         *Service
}

func (h *handler) handleStrainInfo(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing strain name")
		return
	}

	resp, err := h.strainInfo(r.Context(), &strainInfoReq{Query: query})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleListStrains(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listStrains(r.Context(), &listStrainsReq{
		Exclude: r.URL.Query().Get("exclude"),
		Show:    r.URL.Query().Get("show"),
	})
	if err != nil {
		if errors.Is(err, strains.ErrFilterConflict) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleClinicInfo(w http.ResponseWriter, r *http.Request) {
	location := r.PathValue("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "missing location")
		return
	}

	resp, err := h.clinicInfo(r.Context(), &clinicInfoReq{Location: location})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleListClinics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listClinics(r.Context(), &listClinicsReq{
		GroupBy: r.URL.Query().Get("group"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handlePush(w http.ResponseWriter, r *http.Request) {
	target := r.PathValue("target")
	if target != "strains" && target != "clinics" {
		writeError(w, http.StatusNotFound, "unknown push target")
		return
	}

	resp, err := h.push(r.Context(), &pushReq{
		Target:    target,
		Ephemeral: r.URL.Query().Get("ephemeral") == "true",
	})
	if err != nil {
		if errors.Is(err, ErrNoDeliverer) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleReload(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reload(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status  string `json:"status"`
	Strains int    `json:"strains"`
	Clinics int    `json:"clinics"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Strains: h.svc.Catalog.StrainCount(),
		Clinics: h.svc.Catalog.ClinicCount(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
