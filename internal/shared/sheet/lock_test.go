package sheet

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerExcludesSecondHolder(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), "job_order.xlsx")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "job_order.xlsx")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// 不同表互不影响
	other, err := locker.Lock(context.Background(), "delivery_order.xlsx")
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	again, err := locker.Lock(context.Background(), "job_order.xlsx")
	require.NoError(t, err)
	again()
}

func TestRedisLockerExcludesSecondHolder(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	locker := NewRedisLocker(rdb, "fab:lock:", time.Minute)

	unlock, err := locker.Lock(context.Background(), "job_order.xlsx")
	require.NoError(t, err)
	assert.True(t, mr.Exists("fab:lock:job_order.xlsx"))

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "job_order.xlsx")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.False(t, mr.Exists("fab:lock:job_order.xlsx"))

	again, err := locker.Lock(context.Background(), "job_order.xlsx")
	require.NoError(t, err)
	again()
}

func TestRedisLockerDoesNotReleaseForeignLock(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	locker := NewRedisLocker(rdb, "fab:lock:", time.Minute)
	unlock, err := locker.Lock(context.Background(), "t")
	require.NoError(t, err)

	// 锁过期后被其他进程拿走
	mr.FastForward(2 * time.Minute)
	require.NoError(t, mr.Set("fab:lock:t", "someone-else"))

	unlock()
	got, err := mr.Get("fab:lock:t")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLockerRenewsLease(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	locker := NewRedisLocker(rdb, "fab:lock:", 300*time.Millisecond)
	unlock, err := locker.Lock(context.Background(), "job_order.xlsx")
	require.NoError(t, err)

	// 提交耗时超过一个租期时锁仍在
	mr.FastForward(250 * time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	mr.FastForward(250 * time.Millisecond)
	assert.True(t, mr.Exists("fab:lock:job_order.xlsx"))

	unlock()
	assert.False(t, mr.Exists("fab:lock:job_order.xlsx"))
}

func TestFileLockerExcludesAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first := NewFileLocker(dir)
	second := NewFileLocker(dir)

	unlock, err := first.Lock(context.Background(), "data/job_order.xlsx")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	_, err = second.Lock(ctx, "data/job_order.xlsx")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := second.Lock(context.Background(), "data/delivery_order.xlsx")
	require.NoError(t, err)
	other()

	unlock()
	again, err := second.Lock(context.Background(), "data/job_order.xlsx")
	require.NoError(t, err)
	again()
}
