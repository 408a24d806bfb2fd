// Package metrics holds Prometheus instruments that are used across the
// app.  All collectors are registered with the global registry, so importing
// this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveProfiles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_profiles",
			Help: "Number of public profiles currently loaded in memory.",
		})

	ProfileLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_load_total",
			Help: "Cumulative number of profiles successfully loaded.",
		})

	ProfileLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_load_errors_total",
			Help: "Cumulative number of profile load errors.",
		})

	ProfileEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_evict_total",
			Help: "Cumulative number of profiles evicted from the cache.",
		})

	ProfileViewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_views_total",
			Help: "Cumulative number of public profile page renders.",
		})

	ClickTrackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "click_track_total",
			Help: "Cumulative number of visits recorded.",
		})

	ClickTrackErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "click_track_errors_total",
			Help: "Cumulative number of visit records dropped on error.",
		})

	ReorderTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "collection_reorder_total",
			Help: "Cumulative number of collection reorders applied.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveProfiles,
		ProfileLoadTotal,
		ProfileLoadErrorsTotal,
		ProfileEvictTotal,
		ProfileViewsTotal,
		ClickTrackTotal,
		ClickTrackErrorsTotal,
		ReorderTotal,
	)
}
