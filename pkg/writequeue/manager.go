// Package writequeue serializes the write operations of one user
// Package writequeue 串行化同一用户的写操作，同一用户的写入按 FIFO 顺序执行
package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 当用户写队列已满时返回
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 当写队列管理器已关闭时返回
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 当写操作超时时返回
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity 每用户队列容量，默认 100
	QueueCapacity int
	// WriteTimeout 写操作超时时间，默认 30 秒
	WriteTimeout time.Duration
	// IdleTimeout 空闲队列回收时间，默认 10 分钟
	IdleTimeout time.Duration
	// Clock 时钟，测试时可注入 clock.NewMock()
	Clock clock.Clock
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
		Clock:         clock.New(),
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

// userQueue 单用户写队列，由一个 worker 顺序消费
type userQueue struct {
	uid      string
	ch       chan writeOp
	lastUsed atomic.Int64
	closed   atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func (q *userQueue) stop() {
	q.stopOnce.Do(func() {
		q.closed.Store(true)
		close(q.stopCh)
	})
}

// Manager owns one queue per user id
// Manager 管理所有用户的写队列
type Manager struct {
	config Config
	logger *zap.Logger
	clock  clock.Clock

	queues sync.Map // map[string]*userQueue

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	cleanupWg   sync.WaitGroup
	cleanupDone chan struct{}
}

// New creates a write queue manager, nil cfg means DefaultConfig
// New 创建写队列管理器，cfg 为 nil 时使用默认配置
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
		if cfg.Clock != nil {
			c.Clock = cfg.Clock
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		config:      c,
		logger:      logger,
		clock:       c.Clock,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}

	m.cleanupWg.Add(1)
	go m.cleanupIdleQueues()

	m.logger.Info("write queue manager started",
		zap.Int("queueCapacity", c.QueueCapacity),
		zap.Duration("writeTimeout", c.WriteTimeout),
		zap.Duration("idleTimeout", c.IdleTimeout))

	return m
}

// Execute runs fn on the queue of uid and waits for its result
// Execute 将 fn 提交到 uid 的队列并等待结果
func (m *Manager) Execute(ctx context.Context, uid string, fn func() error) error {
	if m.IsClosed() {
		return ErrWriteQueueClosed
	}

	queue := m.getOrCreateQueue(uid)
	if queue == nil {
		return ErrWriteQueueClosed
	}

	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case queue.ch <- op:
	default:
		return ErrWriteQueueFull
	}

	timeout := m.config.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	case <-m.ctx.Done():
		return ErrWriteQueueClosed
	}
}

func (m *Manager) touch(q *userQueue) {
	q.lastUsed.Store(m.clock.Now().UnixNano())
}

// getOrCreateQueue 懒加载用户队列
func (m *Manager) getOrCreateQueue(uid string) *userQueue {
	if v, ok := m.queues.Load(uid); ok {
		q := v.(*userQueue)
		if !q.closed.Load() {
			m.touch(q)
			return q
		}
	}

	if m.IsClosed() {
		return nil
	}

	q := &userQueue{
		uid:    uid,
		ch:     make(chan writeOp, m.config.QueueCapacity),
		stopCh: make(chan struct{}),
	}
	m.touch(q)

	actual, loaded := m.queues.LoadOrStore(uid, q)
	if loaded {
		existing := actual.(*userQueue)
		if !existing.closed.Load() {
			m.touch(existing)
			return existing
		}
		m.queues.Store(uid, q)
	}

	q.wg.Add(1)
	go m.worker(q)

	m.logger.Debug("created write queue for user", zap.String("uid", uid))
	return q
}

func (m *Manager) worker(q *userQueue) {
	defer q.wg.Done()
	defer func() {
		q.closed.Store(true)
		m.logger.Debug("write queue worker stopped", zap.String("uid", q.uid))
	}()

	for {
		select {
		case <-m.ctx.Done():
			m.drain(q)
			return
		case <-q.stopCh:
			m.drain(q)
			return
		case op := <-q.ch:
			m.run(q, op)
		}
	}
}

func (m *Manager) run(q *userQueue, op writeOp) {
	m.touch(q)

	if err := op.ctx.Err(); err != nil {
		op.result <- err
		return
	}
	op.result <- op.fn()
}

func (m *Manager) drain(q *userQueue) {
	for {
		select {
		case op := <-q.ch:
			m.run(q, op)
		default:
			return
		}
	}
}

// cleanupIdleQueues 定期回收空闲队列
func (m *Manager) cleanupIdleQueues() {
	defer m.cleanupWg.Done()

	ticker := m.clock.Ticker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.cleanupDone:
			return
		case <-ticker.C:
			m.doCleanup()
		}
	}
}

func (m *Manager) doCleanup() {
	now := m.clock.Now().UnixNano()
	idle := m.config.IdleTimeout.Nanoseconds()

	m.queues.Range(func(key, value interface{}) bool {
		q := value.(*userQueue)
		last := q.lastUsed.Load()
		if now-last > idle && len(q.ch) == 0 && !q.closed.Load() {
			m.logger.Debug("cleaning up idle write queue",
				zap.String("uid", q.uid),
				zap.Duration("idleTime", time.Duration(now-last)))
			q.stop()
			m.queues.Delete(key)
		}
		return true
	})
}

// Shutdown stops accepting writes and waits for queued ones to finish
// Shutdown 停止接收写入，并等待已排队的操作完成
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("write queue manager shutting down")
	close(m.cleanupDone)

	done := make(chan struct{})
	go func() {
		m.queues.Range(func(_, value interface{}) bool {
			value.(*userQueue).stop()
			return true
		})
		m.queues.Range(func(_, value interface{}) bool {
			value.(*userQueue).wg.Wait()
			return true
		})
		m.cleanupWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		m.cancel()
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout, forcing cancellation")
		m.cancel()
		return ctx.Err()
	}
}

// QueueCount 返回当前活跃队列数量
func (m *Manager) QueueCount() int {
	count := 0
	m.queues.Range(func(_, value interface{}) bool {
		if !value.(*userQueue).closed.Load() {
			count++
		}
		return true
	})
	return count
}

// IsClosed 返回管理器是否已关闭
func (m *Manager) IsClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
