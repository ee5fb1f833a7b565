package filter_test

import (
	"testing"
	"time"

	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	name   string
	status string
	date   time.Time
}

func (r row) FieldValue(field string) (string, bool) {
	switch field {
	case "name":
		return r.name, r.name != ""
	case "status":
		return r.status, r.status != ""
	}
	return "", false
}

func (r row) TimeValue(field string) (time.Time, bool) {
	if field == "date" {
		return r.date, !r.date.IsZero()
	}
	return time.Time{}, false
}

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.name)
	}
	return out
}

func TestBySearch(t *testing.T) {
	items := []row{{name: "Budi Santoso"}, {name: "Siti Aminah"}, {status: "active"}}

	got := filter.BySearch([]row{{name: "Budi Santoso"}}, "budi", "name")
	require.Len(t, got, 1)
	assert.Equal(t, "Budi Santoso", got[0].name)

	assert.Equal(t, items, filter.BySearch(items, "", "name"))
	assert.Equal(t, items, filter.BySearch(items, "   ", "name"))
	assert.Equal(t, []string{"Siti Aminah"}, names(filter.BySearch(items, "AMI", "name")))
	assert.Empty(t, filter.BySearch(items, "budi", "address"), "unknown field never matches")
}

func TestBySearch_AnyField(t *testing.T) {
	items := []row{{name: "Kios A", status: "pending"}, {name: "Kios B", status: "completed"}}

	got := filter.BySearch(items, "pend", "name", "status")
	assert.Equal(t, []string{"Kios A"}, names(got))
}

func TestBySearch_DoesNotMutateInput(t *testing.T) {
	items := []row{{name: "Budi"}, {name: "Siti"}}
	got := filter.BySearch(items, "", "name")
	got[0].name = "changed"
	assert.Equal(t, "Budi", items[0].name)
}

func TestByExactField(t *testing.T) {
	items := []row{{name: "a", status: "active"}, {name: "b", status: "suspended"}, {name: "c"}}

	assert.Equal(t, items, filter.ByExactField(items, "status", "all", filter.DefaultWildcard))
	assert.Equal(t, []string{"b"}, names(filter.ByExactField(items, "status", "suspended", filter.DefaultWildcard)))
	assert.Empty(t, filter.ByExactField(items, "status", "ACTIVE", filter.DefaultWildcard), "exact match is case sensitive")
	assert.Equal(t, items, filter.ByExactField(items, "status", "*", "*"))
}

func TestByDateWindowAt(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, timeutil.WIB)
	items := []row{
		{name: "today", date: now.Add(-2 * time.Hour)},
		{name: "yesterday", date: now.AddDate(0, 0, -1)},
		{name: "six-days", date: now.AddDate(0, 0, -6)},
		{name: "twenty-days", date: now.AddDate(0, 0, -20)},
		{name: "old", date: now.AddDate(0, 0, -45)},
		{name: "undated"},
	}

	assert.Equal(t, []string{"today"}, names(filter.ByDateWindowAt(items, "date", filter.WindowToday, now)))
	assert.Equal(t, []string{"today", "yesterday", "six-days"}, names(filter.ByDateWindowAt(items, "date", filter.WindowWeek, now)))
	assert.Equal(t, []string{"today", "yesterday", "six-days", "twenty-days"}, names(filter.ByDateWindowAt(items, "date", filter.WindowMonth, now)))
	assert.Len(t, filter.ByDateWindowAt(items, "date", filter.WindowAll, now), len(items))
}

func TestByDateWindow_ReadsClockOnEveryCall(t *testing.T) {
	original := filter.Now
	t.Cleanup(func() { filter.Now = original })

	day := time.Date(2026, 10, 14, 9, 0, 0, 0, timeutil.WIB)
	items := []row{{name: "tx", date: day}}

	filter.Now = func() time.Time { return day.Add(time.Hour) }
	assert.Len(t, filter.ByDateWindow(items, "date", filter.WindowToday), 1)

	filter.Now = func() time.Time { return day.AddDate(0, 0, 1) }
	assert.Empty(t, filter.ByDateWindow(items, "date", filter.WindowToday))
}

func TestParseWindow(t *testing.T) {
	assert.Equal(t, filter.WindowToday, filter.ParseWindow("Today"))
	assert.Equal(t, filter.WindowWeek, filter.ParseWindow("week"))
	assert.Equal(t, filter.WindowMonth, filter.ParseWindow(" month "))
	assert.Equal(t, filter.WindowAll, filter.ParseWindow("year"))
	assert.Equal(t, filter.WindowAll, filter.ParseWindow(""))
}

func TestCompose(t *testing.T) {
	items := []row{
		{name: "Budi", status: "active"},
		{name: "Budiman", status: "inactive"},
		{name: "Siti", status: "active"},
	}
	f1 := filter.Search[row]("budi", "name")
	f2 := filter.Exact[row]("status", "active", filter.DefaultWildcard)

	assert.Equal(t, f2(f1(items)), filter.Compose(items, f1, f2))
	assert.Equal(t, []string{"Budi"}, names(filter.Compose(items, f1, f2)))
	assert.Equal(t, filter.Compose(items, f1, f2), filter.Compose(items, f2, f1))
	assert.Equal(t, items, filter.Compose(items))
	assert.Equal(t, items, filter.Compose(items, nil))
}

func TestWhere(t *testing.T) {
	items := []row{{name: "a"}, {name: "bb"}, {name: "ccc"}}
	long := filter.Where(func(r row) bool { return len(r.name) > 1 })
	assert.Equal(t, []string{"bb", "ccc"}, names(long(items)))
}

func TestByExactField_RecipientClassification(t *testing.T) {
	recipients := []models.Recipient{
		{ID: "1", Classification: models.ClassificationPoor},
		{ID: "2", Classification: models.ClassificationMiddle},
		{ID: "3", Classification: models.ClassificationWellOff},
	}

	got := filter.ByExactField(recipients, "classification", "poor", filter.DefaultWildcard)
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("1"), got[0].ID)
}
