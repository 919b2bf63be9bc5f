package writequeue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ExecuteKeepsPerUserOrder(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var mu sync.Mutex
	var got []int

	// 同一用户的写操作按提交顺序执行
	for i := 0; i < 20; i++ {
		i := i
		err := m.Execute(context.Background(), "1", func() error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, i)
			return nil
		})
		require.NoError(t, err)
	}

	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 1, m.QueueCount())
}

func TestManager_ExecuteReturnsFnError(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	boom := errors.New("boom")
	err := m.Execute(context.Background(), "1", func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestManager_ExecuteCancelledContext(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.Execute(ctx, "1", func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestManager_ExecuteAfterShutdown(t *testing.T) {
	m := New(nil, nil)
	require.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, m.IsClosed())

	err := m.Execute(context.Background(), "1", func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)

	// 重复关闭无副作用
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestManager_WriteTimeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 20 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	defer close(release)

	err := m.Execute(context.Background(), "1", func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)
}

func TestManager_IdleQueueCleanup(t *testing.T) {
	mock := clock.NewMock()
	m := New(&Config{IdleTimeout: time.Minute, Clock: mock}, nil)
	defer m.Shutdown(context.Background())

	require.NoError(t, m.Execute(context.Background(), "1", func() error { return nil }))
	require.Equal(t, 1, m.QueueCount())

	// 推进时钟超过空闲时间，清理协程回收队列
	assert.Eventually(t, func() bool {
		mock.Add(40 * time.Second)
		return m.QueueCount() == 0
	}, time.Second, 10*time.Millisecond)

	// 回收后再次写入会重新创建队列
	require.NoError(t, m.Execute(context.Background(), "1", func() error { return nil }))
	assert.Equal(t, 1, m.QueueCount())
}
