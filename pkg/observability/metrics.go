package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// DocumentWrites counts settings document saves
	DocumentWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairwindsk_document_writes_total",
			Help: "Total number of settings document writes",
		},
		[]string{"operation", "status"}, // status: success, failed, invalid
	)

	// DocumentDefaults counts how often the default document had to be synthesized
	DocumentDefaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fairwindsk_document_defaults_total",
			Help: "Total number of times the default settings document was created on load",
		},
	)

	// CatalogOperations counts folder and app edits
	CatalogOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairwindsk_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation", "result"},
	)

	// CatalogSyncApps counts apps added or updated by catalog syncs
	CatalogSyncApps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairwindsk_catalog_sync_apps_total",
			Help: "Total number of apps added or updated by external catalog syncs",
		},
		[]string{"result"}, // result: added, updated
	)

	// CatalogSyncs counts sync runs
	CatalogSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairwindsk_catalog_syncs_total",
			Help: "Total number of external catalog sync runs",
		},
		[]string{"trigger", "status"}, // trigger: schedule, manual
	)

	// CatalogApps tracks the number of apps in the saved document
	CatalogApps = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fairwindsk_catalog_apps",
			Help: "Number of apps in the saved settings document",
		},
	)

	// CatalogFolders tracks the number of folders in the saved document
	CatalogFolders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fairwindsk_catalog_folders",
			Help: "Number of folders in the saved settings document",
		},
	)

	// HTTPRequests counts API requests
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairwindsk_http_requests_total",
			Help: "Total number of settings API requests",
		},
		[]string{"method", "code"},
	)
)

// RecordDocumentWrite records a document save attempt
func RecordDocumentWrite(operation, status string) {
	DocumentWrites.WithLabelValues(operation, status).Inc()
}

// RecordDocumentDefaulted records that the default document was synthesized
func RecordDocumentDefaulted() {
	DocumentDefaults.Inc()
}

// RecordCatalogOperation records a catalog edit and its outcome
func RecordCatalogOperation(operation, result string) {
	CatalogOperations.WithLabelValues(operation, result).Inc()
}

// RecordCatalogSync records a sync run and the number of apps it touched
func RecordCatalogSync(trigger, status string, added, updated int) {
	CatalogSyncs.WithLabelValues(trigger, status).Inc()
	CatalogSyncApps.WithLabelValues("added").Add(float64(added))
	CatalogSyncApps.WithLabelValues("updated").Add(float64(updated))
}

// SetCatalogSize records the size of the saved catalog
func SetCatalogSize(apps, folders int) {
	CatalogApps.Set(float64(apps))
	CatalogFolders.Set(float64(folders))
}

// RecordHTTPRequest records an API request
func RecordHTTPRequest(method string, code int) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}
