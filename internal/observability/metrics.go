package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	KindStructured = "structured"
	KindOpaque     = "opaque"
)

var (
	registerOnce sync.Once

	recordsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recstream",
			Subsystem: "decoder",
			Name:      "records_total",
			Help:      "Records decoded from a stream, by kind and catalog tier.",
		},
		[]string{"kind", "tier"},
	)
	opaqueBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recstream",
			Subsystem: "decoder",
			Name:      "opaque_payload_bytes_total",
			Help:      "Payload bytes captured verbatim in opaque records.",
		},
		[]string{"tier"},
	)
	recordsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recstream",
			Subsystem: "writer",
			Name:      "records_total",
			Help:      "Records serialized to a sink.",
		},
	)
	bytesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recstream",
			Subsystem: "writer",
			Name:      "bytes_total",
			Help:      "Bytes serialized to a sink, headers included.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(recordsDecoded, opaqueBytes, recordsWritten, bytesWritten)
	})
}

func RecordStructured() {
	RegisterMetrics()
	recordsDecoded.WithLabelValues(KindStructured, "").Inc()
}

func RecordOpaque(tier string, payloadLen int) {
	RegisterMetrics()
	recordsDecoded.WithLabelValues(KindOpaque, tier).Inc()
	opaqueBytes.WithLabelValues(tier).Add(float64(payloadLen))
}

func RecordWrite(size int) {
	RegisterMetrics()
	recordsWritten.Inc()
	bytesWritten.Add(float64(size))
}

// WriteTextfile writes every registered collector to path in the text
// exposition format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// DecodedCount returns the current decode counter for kind and tier.
func DecodedCount(kind, tier string) prometheus.Counter {
	return recordsDecoded.WithLabelValues(kind, tier)
}

// OpaqueBytes returns the opaque payload byte counter for tier.
func OpaqueBytes(tier string) prometheus.Counter {
	return opaqueBytes.WithLabelValues(tier)
}
