package prom

import (
	"strconv"
	"sync"

	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemSchema   = "schema"
	SystemHTTP     = "http"
	SystemPayments = "payments"
	SystemExport   = "export"
)

const (
	MetricMigrationSteps   = "migration_steps_total"
	MetricRequestDuration  = "request_duration_seconds"
	MetricPaymentSummaries = "summaries"
	MetricExportPublished  = "published_total"
)

// label values for MetricMigrationSteps and MetricExportPublished
const (
	ResultApplied = "applied"
	ResultFailed  = "failed"
	ResultRebuilt = "rebuilt"
	ResultOK      = "ok"
)

var lockCreateMetricLock = &sync.Mutex{}
var namespace = "none"

// MetricSystemEnabled is false until Create runs; every helper is a no-op
// before that, so tests and the CLI never touch the default registry.
var MetricSystemEnabled = false

var MetricCollectionCounterVec = make(map[string]*prometheus.CounterVec)
var MetricCollectionGaugeVec = make(map[string]*prometheus.GaugeVec)
var MetricCollectionHistogramVec = make(map[string]*prometheus.HistogramVec)

var defaultLabels prometheus.Labels

func Create(host string, env string, nameSpace string) error {
	defaultLabels = make(prometheus.Labels)
	defaultLabels["env"] = env
	defaultLabels["instance"] = host
	namespace = nameSpace
	MetricSystemEnabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createCounterVec(SystemSchema, MetricMigrationSteps,
		"Schema migration steps by outcome.", []string{"result"}))
	hasError(createHistogramVec(SystemHTTP, MetricRequestDuration,
		"API request latency by method and status.", []string{"method", "status"}))
	hasError(createGaugeVec(SystemPayments, MetricPaymentSummaries,
		"Jobs per payment status as of the last summary.", []string{"status"}))
	hasError(createCounterVec(SystemExport, MetricExportPublished,
		"Export documents queued for rendering by outcome.", []string{"result"}))

	return err
}

func ListenAndServer(port string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(port); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

// register keeps the collector already registered under the same name, so
// Create can run more than once in a process.
func register[C prometheus.Collector](c C) (C, error) {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func createCounterVec(subsystem, name, help string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	c, err := register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: defaultLabels,
	}, labels))
	MetricCollectionCounterVec[subsystem+name] = c
	return err
}

func createHistogramVec(subsystem, name, help string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	h, err := register(prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: defaultLabels,
		Buckets:     []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	}, labels))
	MetricCollectionHistogramVec[subsystem+name] = h
	return err
}

func createGaugeVec(subsystem, name, help string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	g, err := register(prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: defaultLabels,
	}, labels))
	MetricCollectionGaugeVec[subsystem+name] = g
	return err
}

func incCounterVec(subsystem, name string, labelValues ...string) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := MetricCollectionCounterVec[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Inc()
		return
	}
	logger.Warn("[metrics-server] counter vec not found", "subsystem", subsystem, "name", name)
}

func IncMigrationStep(result string) {
	incCounterVec(SystemSchema, MetricMigrationSteps, result)
}

func IncExportPublished(result string) {
	incCounterVec(SystemExport, MetricExportPublished, result)
}

func AddRequestDuration(seconds float64, method string, status int) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := MetricCollectionHistogramVec[SystemHTTP+MetricRequestDuration]; ok {
		v.WithLabelValues(method, strconv.Itoa(status)).Observe(seconds)
		return
	}
	logger.Warn("[metrics-server] histogram vec not found", "subsystem", SystemHTTP, "name", MetricRequestDuration)
}

// SetPaymentSummaries replaces the per-status gauge with the latest counts.
func SetPaymentSummaries(counts map[string]int) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := MetricCollectionGaugeVec[SystemPayments+MetricPaymentSummaries]; ok {
		v.Reset()
		for status, n := range counts {
			v.WithLabelValues(status).Set(float64(n))
		}
		return
	}
	logger.Warn("[metrics-server] gauge not found", "subsystem", SystemPayments, "name", MetricPaymentSummaries)
}
