package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"radagast/internal/order/controller"
)

func NewRouter(orderCtrl *controller.OrderController, registry *prometheus.Registry, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", orderCtrl.CreateOrder)
		r.Get("/", orderCtrl.ListOrders)
		r.Get("/{orderId}", orderCtrl.GetOrder)
		r.Patch("/{orderId}/status", orderCtrl.UpdateStatus)
	})

	logger.Info("router configured")

	return r
}
