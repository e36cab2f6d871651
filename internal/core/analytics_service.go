package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/pkg/cache"
)

// analyticsCacheTTL keeps chart responses warm across dashboard page
// loads without letting the numbers go meaningfully stale.
const analyticsCacheTTL = time.Minute

// ScanAnalytics is the response of the scan reporting endpoint.
type ScanAnalytics struct {
	Summary ScanSummary `json:"summary"`
	Buckets []Bucket    `json:"buckets"`
	Gyms    []string    `json:"gyms"` // distinct gym names, for the filter dropdown
}

// TransactionAnalytics is the response of the revenue reporting endpoint.
type TransactionAnalytics struct {
	TotalRevenue float64         `json:"totalRevenue"`
	TotalCount   int             `json:"totalCount"`
	Buckets      []RevenueBucket `json:"buckets"`
}

// DashboardStats backs the landing page cards and its 7-day mini chart.
type DashboardStats struct {
	TotalGyms    int      `json:"totalGyms"`
	TotalUsers   int      `json:"totalUsers"`
	TodayScans   int      `json:"todayScans"`
	TotalRevenue float64  `json:"totalRevenue"`
	Last7Days    []Bucket `json:"last7Days"`
}

// AnalyticsService derives reporting data from the raw record collections.
type AnalyticsService interface {
	ScanAnalytics(ctx context.Context, period Period, filter ScanFilter) (*ScanAnalytics, error)
	TransactionAnalytics(ctx context.Context, period Period, filter TransactionFilter) (*TransactionAnalytics, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type analyticsService struct {
	scanRepo db.ScanRepository
	txnRepo  db.TransactionRepository
	userRepo db.UserRepository
	gymRepo  db.GymRepository
	cache    cache.Cache // nil disables caching
	logger   *zap.Logger
	now      func() time.Time
}

// NewAnalyticsService creates an AnalyticsService. The cache is optional;
// pass nil to recompute on every request.
func NewAnalyticsService(
	scanRepo db.ScanRepository,
	txnRepo db.TransactionRepository,
	userRepo db.UserRepository,
	gymRepo db.GymRepository,
	responseCache cache.Cache,
	logger *zap.Logger,
) AnalyticsService {
	return &analyticsService{
		scanRepo: scanRepo,
		txnRepo:  txnRepo,
		userRepo: userRepo,
		gymRepo:  gymRepo,
		cache:    responseCache,
		logger:   logger,
		now:      time.Now,
	}
}

// ScanAnalytics fetches the scan collection, applies the filter, and
// returns summary figures plus the time-bucketed series. Aggregation runs
// on the fetched in-memory set; malformed records are excluded, never fatal.
func (s *analyticsService) ScanAnalytics(ctx context.Context, period Period, filter ScanFilter) (*ScanAnalytics, error) {
	cacheKey := scanCacheKey(period, filter)
	var cached ScanAnalytics
	if s.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	scans, err := s.scanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scans for analytics: %w", err)
	}

	filtered := FilterScans(scans, filter)

	// The gym dropdown lists every gym seen in the unfiltered set, so
	// narrowing by one gym does not erase the other choices.
	gymSet := make(map[string]struct{})
	for _, scan := range scans {
		if scan.GymName != "" {
			gymSet[scan.GymName] = struct{}{}
		}
	}
	gyms := make([]string, 0, len(gymSet))
	for name := range gymSet {
		gyms = append(gyms, name)
	}
	sort.Strings(gyms)

	result := &ScanAnalytics{
		Summary: SummarizeScans(filtered),
		Buckets: BucketScans(filtered, period),
		Gyms:    gyms,
	}
	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// TransactionAnalytics fetches the transaction collection, applies the
// filter, and returns the revenue series plus overall totals.
func (s *analyticsService) TransactionAnalytics(ctx context.Context, period Period, filter TransactionFilter) (*TransactionAnalytics, error) {
	cacheKey := txnCacheKey(period, filter)
	var cached TransactionAnalytics
	if s.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	txns, err := s.txnRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for analytics: %w", err)
	}

	filtered := FilterTransactions(txns, filter)
	result := &TransactionAnalytics{
		TotalRevenue: TotalPaidRevenue(filtered),
		TotalCount:   len(filtered),
		Buckets:      BucketRevenue(filtered, period),
	}
	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// DashboardStats assembles the landing page: entity totals, today's scan
// count, lifetime paid revenue, and the last seven days of daily scans
// (zero-filled so the mini chart always shows a full week).
func (s *analyticsService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	const cacheKey = "analytics:dashboard"
	var cached DashboardStats
	if s.fromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	gyms, err := s.gymRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gyms for dashboard stats: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for dashboard stats: %w", err)
	}
	scans, err := s.scanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scans for dashboard stats: %w", err)
	}
	txns, err := s.txnRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for dashboard stats: %w", err)
	}

	daily := BucketScans(scans, PeriodDaily)
	countByDay := make(map[string]int, len(daily))
	for _, bucket := range daily {
		countByDay[bucket.Key] = bucket.Count
	}

	today := s.now().UTC()
	last7 := make([]Bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		last7 = append(last7, Bucket{
			Key:   key,
			Label: BucketLabel(key, PeriodDaily),
			Count: countByDay[key],
		})
	}

	result := &DashboardStats{
		TotalGyms:    len(gyms),
		TotalUsers:   len(users),
		TodayScans:   countByDay[today.Format("2006-01-02")],
		TotalRevenue: TotalPaidRevenue(txns),
		Last7Days:    last7,
	}
	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// fromCache attempts to decode a cached response into out. Cache trouble
// is logged and treated as a miss.
func (s *analyticsService) fromCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("analytics cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *analyticsService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("analytics cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), analyticsCacheTTL); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func scanCacheKey(period Period, filter ScanFilter) string {
	return fmt.Sprintf("analytics:scans:%s:%s:%s:%s:%s",
		period, filter.GymName, filter.UserID, timeKey(filter.Start), timeKey(filter.End))
}

func txnCacheKey(period Period, filter TransactionFilter) string {
	return fmt.Sprintf("analytics:transactions:%s:%s:%s:%s:%s",
		period, filter.UserID, filter.Status, timeKey(filter.Start), timeKey(filter.End))
}

func timeKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
