package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	CheckoutsTotal  prometheus.Counter
	CheckoutsFailed prometheus.Counter
	CartMutations   prometheus.Counter
	CatalogRefresh  prometheus.Counter
	CatalogStale    prometheus.Counter
	RenderSec       prometheus.Histogram
	InvoicePages    prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_checkouts_total"})
	checkoutsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_checkouts_failed_total"})
	cartMutations := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_cart_mutations_total"})
	catalogRefresh := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_catalog_refresh_total"})
	catalogStale := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_catalog_stale_dropped_total"})
	renderSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_invoice_render_seconds",
		Buckets: prometheus.DefBuckets,
	})
	invoicePages := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_invoice_pages_total"})

	r.MustRegister(checkouts, checkoutsFailed, cartMutations, catalogRefresh, catalogStale, renderSec, invoicePages)
	return &Registry{
		reg:             r,
		CheckoutsTotal:  checkouts,
		CheckoutsFailed: checkoutsFailed,
		CartMutations:   cartMutations,
		CatalogRefresh:  catalogRefresh,
		CatalogStale:    catalogStale,
		RenderSec:       renderSec,
		InvoicePages:    invoicePages,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
