// Package metrics provides Prometheus instrumentation for file providers.
package metrics

import (
	"time"

	genericfile "github.com/Jumpaku/go-genericfile"
	platformerrors "github.com/jmgilman/go/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels operations that succeeded. Failed operations are labeled with the
// platform error code of the failure, e.g. NOT_FOUND.
const OutcomeOK = "ok"

// Metrics holds the collectors shared by instrumented providers.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	treeNodes         *prometheus.HistogramVec
	contentOpened     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genericfile_provider_operations_total",
				Help: "Total number of provider operations",
			},
			[]string{"provider", "operation", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "genericfile_provider_operation_duration_seconds",
				Help:    "Provider operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
		treeNodes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "genericfile_provider_tree_nodes",
				Help:    "Number of nodes in returned trees",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"provider"},
		),
		contentOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genericfile_provider_content_opened_total",
				Help: "Total number of content streams opened",
			},
			[]string{"provider", "mime_type"},
		),
	}
}

// Instrument wraps p with the collectors of m.
func (m *Metrics) Instrument(p genericfile.Provider) *Provider {
	return &Provider{Provider: p, metrics: m}
}

// Instrument creates the collectors on reg and wraps p with them.
// Use New and Metrics.Instrument to instrument several providers with one registry.
func Instrument(p genericfile.Provider, reg prometheus.Registerer) *Provider {
	return New(reg).Instrument(p)
}

// Provider is a genericfile.Provider recording metrics for every operation it forwards.
type Provider struct {
	genericfile.Provider
	metrics *Metrics
}

var _ genericfile.Provider = (*Provider)(nil)

func (p *Provider) observe(operation string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = string(platformerrors.GetCode(err))
	}
	providerType := p.Provider.Type()
	p.metrics.operationsTotal.WithLabelValues(providerType, operation, outcome).Inc()
	p.metrics.operationDuration.WithLabelValues(providerType, operation).Observe(time.Since(start).Seconds())
}

func (p *Provider) FolderExists(path genericfile.Path) (exists bool, err error) {
	defer func(start time.Time) { p.observe("folder_exists", start, err) }(time.Now())
	return p.Provider.FolderExists(path)
}

func (p *Provider) ContentWrapper(path genericfile.Path) (content *genericfile.ContentWrapper, err error) {
	defer func(start time.Time) { p.observe("content", start, err) }(time.Now())
	content, err = p.Provider.ContentWrapper(path)
	if err == nil {
		p.metrics.contentOpened.WithLabelValues(p.Provider.Type(), content.MimeType).Inc()
	}
	return content, err
}

func (p *Provider) Tree(options genericfile.TreeOptions) (tree *genericfile.Tree, err error) {
	defer func(start time.Time) { p.observe("tree", start, err) }(time.Now())
	tree, err = p.Provider.Tree(options)
	if err == nil {
		p.metrics.treeNodes.WithLabelValues(p.Provider.Type()).Observe(float64(tree.Count()))
	}
	return tree, err
}

func (p *Provider) CreateFolder(path genericfile.Path) (created bool, err error) {
	defer func(start time.Time) { p.observe("create_folder", start, err) }(time.Now())
	return p.Provider.CreateFolder(path)
}

func (p *Provider) HasAccess(path genericfile.Path, permissions genericfile.PermissionSet) (granted bool, err error) {
	defer func(start time.Time) { p.observe("has_access", start, err) }(time.Now())
	return p.Provider.HasAccess(path, permissions)
}
