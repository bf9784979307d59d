package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pxdata/api/polygon"
	m "pxdata/data/models"
	"pxdata/data/repos"
	sm "pxdata/models"
)

const (
	DefaultAddr  = ":8080"
	maxBodyBytes = 1 << 20
)

func GetHttpServer(sc *ServiceContext, addr string) *http.Server {
	if addr == "" {
		addr = DefaultAddr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           GetRouter(sc),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * time.Minute, // ingest runs one insert per bar
		MaxHeaderBytes:    1 << 20,
	}
}

func GetRouter(sc *ServiceContext) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(sc.Logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", sc.ping)

		r.Post("/instruments", sc.addInstrument)
		r.Get("/instruments/{symbol}", sc.getInstruments)

		r.Post("/prices", sc.addPrice)
		r.Get("/prices/{symbol}", sc.getPrices)
		r.Get("/prices/{symbol}/statistics", sc.getStatistics)

		r.Post("/series", sc.fetchSeries)
		r.Post("/ingest", sc.ingest)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("latency", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())))
		})
	}
}

func (sc *ServiceContext) ping(w http.ResponseWriter, r *http.Request) {
	if err := sc.Ping(r.Context()); err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusOK, &sm.PingResponse{Message: "pong"})
}

func (sc *ServiceContext) getInstruments(w http.ResponseWriter, r *http.Request) {
	res, err := sc.ListInstruments(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusOK, &res)
}

func (sc *ServiceContext) addInstrument(w http.ResponseWriter, r *http.Request) {
	var ni m.NewInstrument
	if err := decodeBody(w, r, &ni); err != nil {
		sc.writeError(w, err)
		return
	}

	id, err := sc.AddInstrument(r.Context(), ni)
	if err != nil {
		sc.writeError(w, err)
		return
	}

	writeOk(w, http.StatusCreated, &m.Instrument{
		Id:       id,
		Name:     ni.Name,
		Symbol:   ni.Symbol,
		Type:     ni.Type,
		Currency: ni.Currency,
	})
}

func (sc *ServiceContext) getPrices(w http.ResponseWriter, r *http.Request) {
	res, err := sc.ListPrices(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusOK, &res)
}

func (sc *ServiceContext) addPrice(w http.ResponseWriter, r *http.Request) {
	var pd m.NewPriceData
	if err := decodeBody(w, r, &pd); err != nil {
		sc.writeError(w, err)
		return
	}

	if err := sc.AddPriceBar(r.Context(), pd); err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusCreated, &pd)
}

func (sc *ServiceContext) getStatistics(w http.ResponseWriter, r *http.Request) {
	res, err := sc.PriceStatistics(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusOK, &res)
}

func (sc *ServiceContext) fetchSeries(w http.ResponseWriter, r *http.Request) {
	var qs m.QuerySet
	if err := decodeBody(w, r, &qs); err != nil {
		sc.writeError(w, err)
		return
	}

	series, err := sc.FetchSeries(r.Context(), qs)
	if err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusOK, series)
}

func (sc *ServiceContext) ingest(w http.ResponseWriter, r *http.Request) {
	var req sm.IngestRequest
	if err := decodeBody(w, r, &req); err != nil {
		sc.writeError(w, err)
		return
	}

	report, err := sc.IngestSymbol(r.Context(), req)
	if err != nil {
		sc.writeError(w, err)
		return
	}
	writeOk(w, http.StatusOK, &report)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return invalid("request body", err)
	}
	return nil
}

// StatusFor maps the error taxonomy onto http status codes.
func StatusFor(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case repos.IsNotFound(err):
		return http.StatusNotFound
	case repos.IsConstraint(err):
		return http.StatusConflict
	case polygon.IsTransport(err), polygon.IsDecode(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (sc *ServiceContext) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		sc.Logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}

	msg := err.Error()
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		msg = fmt.Sprintf("request body larger than %d bytes", mbe.Limit)
	}

	writeJson(w, status, sm.GetServiceResponseError(msg))
}

func writeOk[T any](w http.ResponseWriter, status int, data *T) {
	writeJson(w, status, sm.GetServiceResponseOk(data))
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
