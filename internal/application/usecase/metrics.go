package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_assessments_total",
		Help: "Risk assessments persisted, by category and prediction source.",
	}, []string{"category", "source"})

	alertsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "risk_alerts_created_total",
		Help: "High risk alerts created.",
	})

	alertsSuppressedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "risk_alerts_suppressed_total",
		Help: "High risk alerts suppressed by the unread deduplication policy.",
	})

	attendanceRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_logs_recorded_total",
		Help: "Attendance logs recorded.",
	})
)
