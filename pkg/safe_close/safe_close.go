// Package safe_close coordinates graceful shutdown of attached goroutines
// Package safe_close 协调已注册协程的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal and waits for every attached worker
// SafeClose 广播一次关闭信号，并等待所有已注册的工作协程退出
type SafeClose struct {
	once    sync.Once
	signal  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	err     error
	stopped bool
}

func NewSafeClose() *SafeClose {
	return &SafeClose{signal: make(chan struct{})}
}

// Attach runs fn in a new goroutine; fn must call done before returning
// Attach 在新协程中运行 fn，fn 返回前必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() { once.Do(s.wg.Done) }
	go fn(done, s.signal)
}

// SendCloseSignal closes the signal channel once, the first err is kept
// SendCloseSignal 只关闭一次信号通道，保留第一个错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.stopped = true
		s.mu.Unlock()
		close(s.signal)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.signal
}

// IsClosed 返回是否已发送关闭信号
func (s *SafeClose) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// WaitClosed blocks until every attached worker called done
// WaitClosed 阻塞直到所有工作协程调用 done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
