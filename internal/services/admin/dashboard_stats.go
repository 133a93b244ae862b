package admin

import (
	"math"

	"github.com/travelagency/admin/internal/services/admin/storage"
	"github.com/travelagency/admin/internal/services/admin/templates"
)

// Trend compares this month's count with last month's. The percentage is
// the absolute change relative to last month, rounded to the nearest whole
// number. A zero baseline counts any growth as a 100% increment.
func Trend(current, last int) (string, int) {
	if last == 0 {
		if current == 0 {
			return templates.TrendNoChange, 0
		}
		return templates.TrendIncrement, 100
	}
	change := current - last
	percentage := int(math.Round(math.Abs(float64(change) / float64(last) * 100)))
	switch {
	case change > 0:
		return templates.TrendIncrement, percentage
	case change < 0:
		return templates.TrendDecrement, percentage
	default:
		return templates.TrendNoChange, 0
	}
}

func statsCard(headerKey string, total int, month storage.MonthCount) templates.StatsCard {
	trend, percentage := Trend(month.CurrentMonth, month.LastMonth)
	return templates.StatsCard{
		HeaderKey:    headerKey,
		Total:        total,
		CurrentMonth: month.CurrentMonth,
		LastMonth:    month.LastMonth,
		Trend:        trend,
		Percentage:   percentage,
	}
}

func statsCards(stats storage.DashboardStats) []templates.StatsCard {
	return []templates.StatsCard{
		statsCard("dashboard.stats.total_users", stats.TotalUsers, stats.UsersJoined),
		statsCard("dashboard.stats.total_trips", stats.TotalTrips, stats.TripsCreated),
		statsCard("dashboard.stats.active_users", stats.ActiveUsers, stats.ActiveUsersMonth),
	}
}
