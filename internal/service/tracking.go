package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"golang.org/x/sync/errgroup"
)

// DayView is one calendar day against the user's goals, together with the
// Monday-based week containing it.
type DayView struct {
	Date                  domain.Day                `json:"date"`
	Tracking              *domain.DailyTracking     `json:"tracking"`
	Goals                 domain.DailyTrackingGoals `json:"goals"`
	Week                  []domain.DailyTracking    `json:"week"`
	CalorieProgress       float64                   `json:"calorieProgress"`
	WaterProgress         float64                   `json:"waterProgress"`
	WeeklyAverageCalories float64                   `json:"weeklyAverageCalories"`
	WeeklyAverageWater    float64                   `json:"weeklyAverageWater"`
}

// Period is a run of tracked days. Averages cover only the days that have a
// record.
type Period struct {
	Start           domain.Day             `json:"start"`
	End             domain.Day             `json:"end"`
	Days            []domain.DailyTracking `json:"days"`
	AverageCalories float64                `json:"averageCalories"`
	AverageWater    float64                `json:"averageWater"`
}

type TrackingService struct {
	users    UserStore
	tracking TrackingStore
	log      *logger.Logger
	locks    *KeyedMutex
	now      func() time.Time
}

func NewTrackingService(users UserStore, tracking TrackingStore, locks *KeyedMutex, log *logger.Logger) *TrackingService {
	return &TrackingService{
		users:    users,
		tracking: tracking,
		log:      log,
		locks:    locks,
		now:      clock,
	}
}

// Day loads the record, the goals and the week of day in parallel.
func (s *TrackingService) Day(ctx context.Context, day domain.Day) (*DayView, error) {
	const op = "service.tracking.Day"

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	var (
		record *domain.DailyTracking
		goals  *domain.DailyTrackingGoals
		week   []domain.DailyTracking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = s.tracking.GetDaily(gctx, u.ID, day)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.tracking.GetGoals(gctx, u.ID)
		return err
	})
	g.Go(func() error {
		var err error
		week, err = s.tracking.GetWeekly(gctx, u.ID, day.StartOfWeek())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internalError(s.log, op, "failed to load day", err)
	}

	if goals == nil {
		d := domain.DefaultGoals(u.ID)
		goals = &d
	}
	if week == nil {
		week = []domain.DailyTracking{}
	}

	view := &DayView{
		Date:     day,
		Tracking: record,
		Goals:    *goals,
		Week:     week,
	}
	if record != nil {
		view.CalorieProgress = progress(record.CalorieIntake, goals.DailyCalorieGoal)
		view.WaterProgress = progress(record.WaterIntake, goals.DailyWaterGoal)
	}
	view.WeeklyAverageCalories, view.WeeklyAverageWater = averages(week)
	return view, nil
}

// SaveDay records the intake of a day, overwriting what was logged before.
func (s *TrackingService) SaveDay(ctx context.Context, day domain.Day, calories, water float64) (*domain.DailyTracking, error) {
	const op = "service.tracking.SaveDay"

	if err := validateIntake("calorieIntake", calories); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateIntake("waterIntake", water); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.locks.Lock(profileLockKey)
	defer unlock()

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &domain.DailyTracking{
		ID:            uuid.New(),
		UserID:        u.ID,
		Date:          day,
		CalorieIntake: calories,
		WaterIntake:   water,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.tracking.SaveDaily(ctx, t); err != nil {
		return nil, internalError(s.log, op, "failed to save daily tracking", err)
	}

	s.log.Info("daily tracking saved", "op", op, "day", day.String())
	return t, nil
}

// Goals returns the stored goals or the defaults when none are stored.
func (s *TrackingService) Goals(ctx context.Context) (*domain.DailyTrackingGoals, error) {
	const op = "service.tracking.Goals"

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	goals, err := s.tracking.GetGoals(ctx, u.ID)
	if err != nil {
		return nil, internalError(s.log, op, "failed to load goals", err)
	}
	if goals == nil {
		d := domain.DefaultGoals(u.ID)
		return &d, nil
	}
	return goals, nil
}

func (s *TrackingService) SaveGoals(ctx context.Context, calories, water float64) (*domain.DailyTrackingGoals, error) {
	const op = "service.tracking.SaveGoals"

	if err := validateGoal("dailyCalorieGoal", calories); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateGoal("dailyWaterGoal", water); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.locks.Lock(profileLockKey)
	defer unlock()

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	now := s.now()
	g := &domain.DailyTrackingGoals{
		UserID:           u.ID,
		DailyCalorieGoal: calories,
		DailyWaterGoal:   water,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.tracking.SaveGoals(ctx, g); err != nil {
		return nil, internalError(s.log, op, "failed to save goals", err)
	}

	s.log.Info("tracking goals saved", "op", op)
	return g, nil
}

// Week returns the seven days starting at start.
func (s *TrackingService) Week(ctx context.Context, start domain.Day) (*Period, error) {
	const op = "service.tracking.Week"

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	days, err := s.tracking.GetWeekly(ctx, u.ID, start)
	if err != nil {
		return nil, internalError(s.log, op, "failed to load week", err)
	}
	return newPeriod(start, start.AddDays(6), days), nil
}

func (s *TrackingService) Month(ctx context.Context, year int, month time.Month) (*Period, error) {
	const op = "service.tracking.Month"

	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{"year", "is out of range"})
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{"month", "must be between 1 and 12"})
	}

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	days, err := s.tracking.GetMonthly(ctx, u.ID, year, month)
	if err != nil {
		return nil, internalError(s.log, op, "failed to load month", err)
	}
	start := domain.StartOfMonth(year, month)
	end := domain.Day{Time: start.AddDate(0, 1, -1)}
	return newPeriod(start, end, days), nil
}

func newPeriod(start, end domain.Day, days []domain.DailyTracking) *Period {
	if days == nil {
		days = []domain.DailyTracking{}
	}
	p := &Period{Start: start, End: end, Days: days}
	p.AverageCalories, p.AverageWater = averages(days)
	return p
}

// progress is current/goal capped at 1.
func progress(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(current/goal, 1)
}

func averages(days []domain.DailyTracking) (calories, water float64) {
	if len(days) == 0 {
		return 0, 0
	}
	for _, d := range days {
		calories += d.CalorieIntake
		water += d.WaterIntake
	}
	n := float64(len(days))
	return calories / n, water / n
}
