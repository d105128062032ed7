package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores del ledger. Se exponen en un listener separado del API
// para no mezclar tráfico de scraping con tráfico de negocio.
var (
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos_bodegas",
		Subsystem: "ledger",
		Name:      "movements_applied_total",
		Help:      "Movimientos de inventario aplicados, por causa.",
	}, []string{"cause"})

	InsufficientStock = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pos_bodegas",
		Subsystem: "ledger",
		Name:      "insufficient_stock_total",
		Help:      "Lotes rechazados por stock insuficiente.",
	})

	BatchConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pos_bodegas",
		Subsystem: "ledger",
		Name:      "batch_conflicts_total",
		Help:      "Lotes abortados tras agotar los reintentos por contención.",
	})

	TransfersResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos_bodegas",
		Subsystem: "transfers",
		Name:      "resolved_total",
		Help:      "Traslados resueltos, por estado final (COMPLETED/REJECTED).",
	}, []string{"status"})
)

// Serve arranca el endpoint /metrics en addr. Bloquea; pensado para un goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
