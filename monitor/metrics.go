package monitor

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PromotionsTotal counts successful moves of a ready-for-publication
	// entry into the in-publication pipeline.
	PromotionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "publication_promotions_total",
			Help: "Total number of entries promoted to in-publication.",
		},
	)

	// VenueApplicationsTotal counts venue applications by venue type.
	VenueApplicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_applications_total",
			Help: "Total number of venue applications recorded.",
		},
		[]string{"venue_type"},
	)
)

func init() {
	prometheus.MustRegister(PromotionsTotal, VenueApplicationsTotal)
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint.
func RegisterMetricsRoute(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
