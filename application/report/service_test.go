package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout/application/report"
	"takeout/domain/order"
	"takeout/domain/shared"
	"takeout/domain/user"
	"takeout/infrastructure/persistence/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func seedOrder(t *testing.T, repo *memory.OrderRepository, id string, status order.Status, amount int64, orderedAt time.Time) {
	t.Helper()
	o := order.RebuildFromDTO(order.ReconstructionDTO{
		ID:        id,
		Number:    id,
		UserID:    "user-1",
		Status:    status,
		PayStatus: order.PayStatusPaid,
		Amount:    shared.CNY(amount),
		OrderedAt: orderedAt,
	})
	require.NoError(t, repo.Insert(context.Background(), o))
}

func TestTurnoverBucketsByDay(t *testing.T) {
	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository()
	svc := report.NewService(orders, users)

	aug1 := day(2026, time.August, 1)
	aug2 := day(2026, time.August, 2)
	aug3 := day(2026, time.August, 3)

	seedOrder(t, orders, "o1", order.StatusCompleted, 1000, aug1.Add(10*time.Hour))
	seedOrder(t, orders, "o2", order.StatusCompleted, 500, aug1.Add(23*time.Hour+59*time.Minute))
	seedOrder(t, orders, "o3", order.StatusCompleted, 700, aug3.Add(30*time.Minute))
	// cancelled orders never count, refund pending or not
	seedOrder(t, orders, "o4", order.StatusCancelled, 9999, aug2.Add(12*time.Hour))
	// in-flight orders do not count either
	seedOrder(t, orders, "o5", order.StatusDeliveryInProgress, 800, aug2.Add(12*time.Hour))

	got, err := svc.Turnover(context.Background(), aug1, aug3)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-08-01", "2026-08-02", "2026-08-03"}, got.Dates)
	assert.Equal(t, []int64{1500, 0, 700}, got.Turnover)
}

func TestTurnoverSingleDay(t *testing.T) {
	orders := memory.NewOrderRepository()
	svc := report.NewService(orders, memory.NewUserRepository())

	aug1 := day(2026, time.August, 1)
	seedOrder(t, orders, "o1", order.StatusCompleted, 1200, aug1.Add(8*time.Hour))

	got, err := svc.Turnover(context.Background(), aug1, aug1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-01"}, got.Dates)
	assert.Equal(t, []int64{1200}, got.Turnover)
}

func TestTurnoverInvalidRange(t *testing.T) {
	svc := report.NewService(memory.NewOrderRepository(), memory.NewUserRepository())

	_, err := svc.Turnover(context.Background(), day(2026, time.August, 3), day(2026, time.August, 1))
	assert.ErrorIs(t, err, report.ErrInvalidRange)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestTurnoverIgnoresTimeOfDayOnBounds(t *testing.T) {
	orders := memory.NewOrderRepository()
	svc := report.NewService(orders, memory.NewUserRepository())

	aug1 := day(2026, time.August, 1)
	seedOrder(t, orders, "o1", order.StatusCompleted, 300, aug1.Add(2*time.Hour))

	// bounds carry times of day; the day range must still cover Aug 1 fully
	got, err := svc.Turnover(context.Background(), aug1.Add(18*time.Hour), aug1.Add(20*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []int64{300}, got.Turnover)
}

func TestUsersSeries(t *testing.T) {
	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository()
	svc := report.NewService(orders, users)

	aug1 := day(2026, time.August, 1)
	aug3 := day(2026, time.August, 3)

	users.Put(user.User{ID: "u1", CreatedAt: day(2026, time.July, 20)})
	users.Put(user.User{ID: "u2", CreatedAt: aug1.Add(9 * time.Hour)})
	users.Put(user.User{ID: "u3", CreatedAt: aug1.Add(22 * time.Hour)})
	users.Put(user.User{ID: "u4", CreatedAt: aug3.Add(1 * time.Hour)})

	got, err := svc.Users(context.Background(), aug1, aug3)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-08-01", "2026-08-02", "2026-08-03"}, got.Dates)
	assert.Equal(t, []int64{2, 0, 1}, got.NewUsers)
	assert.Equal(t, []int64{3, 3, 4}, got.TotalUsers)
}
