package task

import (
	"context"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/logger"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/safe_close"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Schedule() cron.Schedule       // 执行计划，nil 表示只在启动时执行
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
	clock  clock.Clock
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
		clock:  clock.New(),
	}
}

// WithClock 替换时钟（测试使用）
func (s *Scheduler) WithClock(c clock.Clock) *Scheduler {
	s.clock = c
	return s
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Len 已添加的任务数量
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting ", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// runOnce 执行一次任务，panic 不影响调度循环
func (s *Scheduler) runOnce(task Task, kind string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task "+kind+" panic",
				zap.String(logger.FieldTask, task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	s.logger.Info("task running", zap.String(logger.FieldTask, task.Name()), zap.Bool(kind, true))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String(logger.FieldTask, task.Name()),
			zap.Bool(kind, true),
			zap.Error(err))
	}
}

// startTask 启动单个任务
func (s *Scheduler) startTask(task Task) {

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		if task.IsStartupRun() {
			go s.runOnce(task, "startupRun")
		}

		schedule := task.Schedule()
		if schedule == nil {
			return
		}

		for {
			now := s.clock.Now()
			next := schedule.Next(now)
			if next.IsZero() {
				s.logger.Warn("task has no next run time", zap.String(logger.FieldTask, task.Name()))
				return
			}

			timer := s.clock.Timer(next.Sub(now))
			select {
			case <-timer.C:
				s.runOnce(task, "loopRun")
			case <-closeSignal:
				timer.Stop()
				s.logger.Info("task stopped", zap.String(logger.FieldTask, task.Name()), zap.Bool("loopRun", true))
				return
			}
		}
	})
}

// NextRun 计算任务在 from 之后的下一次执行时间
func NextRun(task Task, from time.Time) (time.Time, bool) {
	schedule := task.Schedule()
	if schedule == nil {
		return time.Time{}, false
	}
	next := schedule.Next(from)
	return next, !next.IsZero()
}
