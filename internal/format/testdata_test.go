package format

import (
	"time"

	"github.com/cristianoliveira/alertdeck/internal/dedup"
	"github.com/cristianoliveira/alertdeck/internal/domain"
)

var t0 = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func sampleNotifications() []domain.Notification {
	return []domain.Notification{
		{
			ID: "n-3", Seq: 3, Title: "Flood warning for the river district", Type: domain.TypeError,
			Priority: domain.PriorityCritical, Source: "hydro", Timestamp: t0.Add(2 * time.Minute),
			Alert: &domain.AlertDetails{RiskLevel: 9.2, Location: "Riverside"},
		},
		{
			ID: "n-2", Seq: 2, Title: "Road closed", Type: domain.TypeWarning,
			Priority: domain.PriorityHigh, Source: "traffic", Timestamp: t0.Add(time.Minute), Read: true,
		},
		{
			ID: "n-1", Seq: 1, Title: "Backup finished", Type: domain.TypeSuccess,
			Priority: domain.PriorityLow, Timestamp: t0, Dismissed: true, Read: true,
		},
	}
}

func sampleGroups() []dedup.Group {
	items := sampleNotifications()
	return []dedup.Group{
		{Key: "flood", Items: items[:1], Unread: 1},
		{Key: "road", Items: items[1:2]},
	}
}
