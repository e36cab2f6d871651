package core

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// Period selects the bucket width for time-series aggregation.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ErrInvalidPeriod is returned for period selectors outside daily/weekly/monthly.
var ErrInvalidPeriod = errors.New("invalid period: must be daily, weekly or monthly")

// ParsePeriod validates a period query parameter, defaulting to daily.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	case "":
		return PeriodDaily, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// recordTimeLayouts are the formats the mobile app has written over time.
var recordTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecordTime normalizes the loosely-typed timestamp shapes found in
// stored records: native timestamps, ISO-8601 strings, and serialized
// Firestore timestamps carrying a seconds component. The second return is
// false when the value cannot be interpreted; callers skip such records
// rather than misattributing them to the current time.
func ParseRecordTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range recordTimeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case map[string]interface{}:
		for _, key := range []string{"seconds", "_seconds"} {
			if raw, ok := t[key]; ok {
				switch sec := raw.(type) {
				case int64:
					return time.Unix(sec, 0), true
				case float64:
					return time.Unix(int64(sec), 0), true
				case int:
					return time.Unix(int64(sec), 0), true
				}
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// BucketKey computes the bucket a timestamp falls into. Keys are built in
// UTC and zero-padded so that lexicographic order equals chronological order.
//   - daily:   YYYY-MM-DD
//   - weekly:  the date of the Sunday starting the containing week
//   - monthly: YYYY-MM
func BucketKey(t time.Time, period Period) string {
	utc := t.UTC()
	switch period {
	case PeriodWeekly:
		sunday := utc.AddDate(0, 0, -int(utc.Weekday()))
		return sunday.Format("2006-01-02")
	case PeriodMonthly:
		return utc.Format("2006-01")
	default:
		return utc.Format("2006-01-02")
	}
}

// BucketLabel humanizes a bucket key for chart axes: "Jan 5" for days,
// "Jan 5 – Jan 11" for weeks, "January 2024" for months. Keys that fail
// to parse fall back to the raw key rather than breaking the chart.
func BucketLabel(key string, period Period) string {
	switch period {
	case PeriodWeekly:
		start, err := time.Parse("2006-01-02", key)
		if err != nil {
			return key
		}
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2"))
	case PeriodMonthly:
		month, err := time.Parse("2006-01", key)
		if err != nil {
			return key
		}
		return month.Format("January 2006")
	default:
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			return key
		}
		return day.Format("Jan 2")
	}
}

// Bucket is one time interval in a count series.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RevenueBucket is one time interval in a revenue series. Revenue sums
// only Paid transactions; Count covers every record in the bucket.
type RevenueBucket struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// BucketScans groups scan events into ascending time buckets. Scans whose
// Time fails to parse are skipped entirely; the result is independent of
// input order.
func BucketScans(scans []*models.QRScan, period Period) []Bucket {
	counts := make(map[string]int)
	for _, scan := range scans {
		t, ok := ParseRecordTime(scan.Time)
		if !ok {
			continue
		}
		counts[BucketKey(t, period)]++
	}

	keys := sortedKeys(counts)
	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, Bucket{Key: key, Label: BucketLabel(key, period), Count: counts[key]})
	}
	return buckets
}

// BucketRevenue groups transactions into ascending time buckets, summing
// the Amount of Paid transactions and counting all records per bucket.
// Transactions without a parseable UpdatedAt are skipped.
func BucketRevenue(txns []*models.Transaction, period Period) []RevenueBucket {
	type agg struct {
		revenue float64
		count   int
	}
	byKey := make(map[string]*agg)
	for _, txn := range txns {
		t, ok := ParseRecordTime(txn.UpdatedAt)
		if !ok {
			continue
		}
		key := BucketKey(t, period)
		entry := byKey[key]
		if entry == nil {
			entry = &agg{}
			byKey[key] = entry
		}
		if txn.Status == models.TransactionStatusPaid {
			entry.revenue += txn.Amount
		}
		entry.count++
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]RevenueBucket, 0, len(keys))
	for _, key := range keys {
		entry := byKey[key]
		buckets = append(buckets, RevenueBucket{
			Key:     key,
			Label:   BucketLabel(key, period),
			Revenue: entry.revenue,
			Count:   entry.count,
		})
	}
	return buckets
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// OrganizationGroup is the derived roll-up for one organization label.
// active + frozen always equals total.
type OrganizationGroup struct {
	Name        string         `json:"name"`
	TotalUsers  int            `json:"totalUsers"`
	ActiveUsers int            `json:"activeUsers"`
	FrozenUsers int            `json:"frozenUsers"`
	Users       []*models.User `json:"users,omitempty"`
}

// GroupByOrganization partitions users by their non-empty Organization
// value. Users without an organization do not appear in any group; there
// is no catch-all bucket. Groups are ordered by descending member count,
// with ties keeping first-encounter order.
func GroupByOrganization(users []*models.User) []OrganizationGroup {
	byName := make(map[string]*OrganizationGroup)
	var order []string

	for _, user := range users {
		if user.Organization == "" {
			continue
		}
		group := byName[user.Organization]
		if group == nil {
			group = &OrganizationGroup{Name: user.Organization}
			byName[user.Organization] = group
			order = append(order, user.Organization)
		}
		group.TotalUsers++
		if user.IsUserFreezed {
			group.FrozenUsers++
		} else {
			group.ActiveUsers++
		}
		group.Users = append(group.Users, user)
	}

	groups := make([]OrganizationGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, *byName[name])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalUsers > groups[j].TotalUsers
	})
	return groups
}

// ScanFilter narrows a scan set. Zero values match everything for their
// dimension; Start and End are inclusive bounds on the parsed scan time.
type ScanFilter struct {
	GymName string
	UserID  string
	Start   *time.Time
	End     *time.Time
}

// FilterScans applies every set constraint with logical AND. A scan whose
// timestamp cannot be parsed never matches a date bound, but passes when
// no date bound is set.
func FilterScans(scans []*models.QRScan, filter ScanFilter) []*models.QRScan {
	var out []*models.QRScan
	for _, scan := range scans {
		if filter.GymName != "" && scan.GymName != filter.GymName {
			continue
		}
		if filter.UserID != "" && scan.UserID != filter.UserID {
			continue
		}
		if !matchesDateBounds(scan.Time, filter.Start, filter.End) {
			continue
		}
		out = append(out, scan)
	}
	return out
}

// TransactionFilter narrows a transaction set the same way ScanFilter does.
type TransactionFilter struct {
	UserID string
	Status string
	Start  *time.Time
	End    *time.Time
}

// FilterTransactions applies every set constraint with logical AND.
func FilterTransactions(txns []*models.Transaction, filter TransactionFilter) []*models.Transaction {
	var out []*models.Transaction
	for _, txn := range txns {
		if filter.UserID != "" && txn.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && txn.Status != filter.Status {
			continue
		}
		if !matchesDateBounds(txn.UpdatedAt, filter.Start, filter.End) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

func matchesDateBounds(raw interface{}, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	t, ok := ParseRecordTime(raw)
	if !ok {
		// An unparseable timestamp never matches a date-bound filter.
		return false
	}
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

// ScanSummary is the headline figures above the scan chart.
type ScanSummary struct {
	TotalScans  int `json:"totalScans"`
	UniqueGyms  int `json:"uniqueGyms"`
	UniqueUsers int `json:"uniqueUsers"`
}

// SummarizeScans counts totals and distinct gyms/users over a scan set.
func SummarizeScans(scans []*models.QRScan) ScanSummary {
	gyms := make(map[string]struct{})
	users := make(map[string]struct{})
	for _, scan := range scans {
		if scan.GymName != "" {
			gyms[scan.GymName] = struct{}{}
		}
		if scan.UserID != "" {
			users[scan.UserID] = struct{}{}
		}
	}
	return ScanSummary{
		TotalScans:  len(scans),
		UniqueGyms:  len(gyms),
		UniqueUsers: len(users),
	}
}

// TotalPaidRevenue sums the Amount of Paid transactions.
func TotalPaidRevenue(txns []*models.Transaction) float64 {
	var total float64
	for _, txn := range txns {
		if txn.Status == models.TransactionStatusPaid {
			total += txn.Amount
		}
	}
	return total
}
