package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/jhoicas/cuentas-por-pagar/pkg/logger"
)

const localLogger = "logger"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cxp_http_requests_total",
		Help: "Peticiones HTTP atendidas por método, ruta y estado.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cxp_http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	accessDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cxp_access_denied_total",
		Help: "Accesos rechazados por la política, por operación y motivo.",
	}, []string{"operation", "reason"})
)

// Observe registra cada petición en el log (zerolog) y en las métricas Prometheus.
// Resuelve aquí los errores de la cadena para conocer el estado final.
func Observe(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.GetRespHeader(fiber.HeaderXRequestID)
		reqLog := log.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, &reqLog)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		elapsed := time.Since(start)
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Int64("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

// MetricsHandler expone el registro por defecto de Prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// requestLog devuelve el logger de la petición o el global si no pasó por Observe.
func requestLog(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return l
	}
	return &zlog.Logger
}
