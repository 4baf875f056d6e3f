// Package report hosts the time-series statistics aggregator: daily
// turnover and user-growth series over an inclusive calendar-day range.
package report

import (
	"context"
	"errors"
	"time"

	"takeout/domain/order"
	"takeout/domain/shared"
)

// ErrInvalidRange the requested range has begin after end.
var ErrInvalidRange = errors.New("begin date is after end date")

// DateLayout is the wire format of the per-day labels.
const DateLayout = "2006-01-02"

// OrderReader is the slice of the order store the aggregator consumes.
type OrderReader interface {
	SumAmountByStatusInRange(ctx context.Context, begin, end time.Time, status order.Status) (int64, error)
}

// UserReader is the slice of the user store the aggregator consumes.
type UserReader interface {
	CountCreatedBefore(ctx context.Context, instant time.Time) (int64, error)
	CountCreatedBetween(ctx context.Context, begin, end time.Time) (int64, error)
}

// TurnoverReport carries parallel slices: Turnover[i] is the completed
// turnover (minor units) of the day labelled Dates[i]. Days without
// completed orders report 0.
type TurnoverReport struct {
	Dates    []string `json:"dateList"`
	Turnover []int64  `json:"turnoverList"`
}

// UserReport carries parallel slices: TotalUsers[i] is the cumulative
// user count at the end of Dates[i], NewUsers[i] the registrations during
// that day.
type UserReport struct {
	Dates      []string `json:"dateList"`
	TotalUsers []int64  `json:"totalUserList"`
	NewUsers   []int64  `json:"newUserList"`
}

// Service is the statistics aggregator. It is read-only: nothing here
// mutates order or user state.
type Service struct {
	orders OrderReader
	users  UserReader
}

// NewService creates the aggregator.
func NewService(orders OrderReader, users UserReader) *Service {
	return &Service{orders: orders, users: users}
}

// Turnover reports the per-day turnover of completed orders over
// [begin, end]. Only completed orders count; cancelled orders never do,
// even when their refund flag is still pending.
func (s *Service) Turnover(ctx context.Context, begin, end time.Time) (*TurnoverReport, error) {
	days, err := daysBetween(begin, end)
	if err != nil {
		return nil, err
	}

	report := &TurnoverReport{
		Dates:    make([]string, len(days)),
		Turnover: make([]int64, len(days)),
	}
	for i, day := range days {
		report.Dates[i] = day.Format(DateLayout)
		sum, err := s.orders.SumAmountByStatusInRange(ctx, dayStart(day), dayEnd(day), order.StatusCompleted)
		if err != nil {
			return nil, err
		}
		report.Turnover[i] = sum
	}
	return report, nil
}

// Users reports the per-day cumulative and new user counts over
// [begin, end].
func (s *Service) Users(ctx context.Context, begin, end time.Time) (*UserReport, error) {
	days, err := daysBetween(begin, end)
	if err != nil {
		return nil, err
	}

	report := &UserReport{
		Dates:      make([]string, len(days)),
		TotalUsers: make([]int64, len(days)),
		NewUsers:   make([]int64, len(days)),
	}
	for i, day := range days {
		report.Dates[i] = day.Format(DateLayout)

		total, err := s.users.CountCreatedBefore(ctx, dayEnd(day))
		if err != nil {
			return nil, err
		}
		fresh, err := s.users.CountCreatedBetween(ctx, dayStart(day), dayEnd(day))
		if err != nil {
			return nil, err
		}
		report.TotalUsers[i] = total
		report.NewUsers[i] = fresh
	}
	return report, nil
}

// daysBetween expands [begin, end] into the calendar days it covers, both
// ends inclusive. Times of day on the bounds are ignored.
func daysBetween(begin, end time.Time) ([]time.Time, error) {
	b := dayStart(begin)
	e := dayStart(end)
	if b.After(e) {
		return nil, &shared.DomainError{
			Err:     errors.Join(ErrInvalidRange, shared.ErrInvalidInput),
			Entity:  "report",
			Message: "begin date " + b.Format(DateLayout) + " is after end date " + e.Format(DateLayout),
			Field:   "begin",
		}
	}

	var days []time.Time
	for d := b; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// dayStart is 00:00:00.0 of the day in its own location.
func dayStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// dayEnd is the last representable instant of the day.
func dayEnd(d time.Time) time.Time {
	return dayStart(d).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
