package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reference_data",
		Subsystem: "consumer",
		Name:      "messages_processed_total",
		Help:      "Number of Kafka messages processed by the reference-data consumer.",
	}, []string{"topic", "event_type"})

	lastMessageGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "reference_data",
		Subsystem: "consumer",
		Name:      "last_message_timestamp_seconds",
		Help:      "Timestamp of the most recent Kafka message processed.",
	}, []string{"topic"})

	importRecordsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reference_data",
		Subsystem: "consumer",
		Name:      "import_records_total",
		Help:      "Backup import outcomes per store, labelled added/updated/skipped.",
	}, []string{"store", "outcome"})
)

func init() {
	prometheus.MustRegister(processedCounter, lastMessageGauge, importRecordsCounter)
}

// RecordProcessed updates counters for successfully handled messages.
func RecordProcessed(msg Message) {
	processedCounter.WithLabelValues(msg.Topic, msg.EventType()).Inc()
	if !msg.Timestamp.IsZero() {
		lastMessageGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	}
}

// RecordImport updates import outcome counters for one store.
func RecordImport(store string, added, updated, skipped int) {
	importRecordsCounter.WithLabelValues(store, "added").Add(float64(added))
	importRecordsCounter.WithLabelValues(store, "updated").Add(float64(updated))
	importRecordsCounter.WithLabelValues(store, "skipped").Add(float64(skipped))
}
