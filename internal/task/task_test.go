package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dao"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/safe_close"

	"github.com/benbjohnson/clock"
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTask struct {
	runs     atomic.Int32
	schedule cron.Schedule
	startup  bool
	err      error
	panics   bool
}

func (t *countingTask) Name() string { return "Counting" }
func (t *countingTask) Schedule() cron.Schedule { return t.schedule }
func (t *countingTask) IsStartupRun() bool { return t.startup }
func (t *countingTask) Run(context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("boom")
	}
	return t.err
}

func newTestApp(t *testing.T, cronExpr string) *app.App {
	t.Helper()
	cfg := new(app.AppConfig)
	require.NoError(t, defaults.Set(cfg))
	cfg.App.DemoResetCron = cronExpr

	a, err := app.NewApp(cfg, zap.NewNop(), dao.NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, a.ResetStore(context.Background()))
	return a
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	sc := safe_close.NewSafeClose()
	mock := clock.NewMock()
	s := NewScheduler(zap.NewNop(), sc).WithClock(mock)

	task := &countingTask{schedule: cron.Every(time.Minute), err: errors.New("ignored")}
	s.AddTask(task)
	s.Start()

	require.Eventually(t, func() bool {
		mock.Add(time.Minute)
		return task.runs.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestScheduler_StartupRunAndPanicRecovery(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc).WithClock(clock.NewMock())

	task := &countingTask{startup: true, panics: true}
	s.AddTask(task)
	assert.Equal(t, 1, s.Len())
	s.Start()

	require.Eventually(t, func() bool { return task.runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	// 无计划的任务启动后立即退出循环
	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestScheduler_NoTasks(t *testing.T) {
	sc := safe_close.NewSafeClose()
	NewScheduler(zap.NewNop(), sc).Start()
	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}

func TestNextRun(t *testing.T) {
	from := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	schedule, err := cron.ParseStandard("0 * * * *")
	require.NoError(t, err)
	next, ok := NextRun(&countingTask{schedule: schedule}, from)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), next)

	_, ok = NextRun(&countingTask{}, from)
	assert.False(t, ok)
}

func TestNewDemoResetTask(t *testing.T) {
	task, err := NewDemoResetTask(newTestApp(t, ""))
	require.NoError(t, err)
	assert.Nil(t, task)

	_, err = NewDemoResetTask(newTestApp(t, "not a cron"))
	assert.Error(t, err)

	task, err = NewDemoResetTask(newTestApp(t, "@every 1h"))
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "DemoReset", task.Name())
	assert.False(t, task.IsStartupRun())
	assert.NotNil(t, task.Schedule())
}

func TestDemoResetTask_RestoresSeed(t *testing.T) {
	a := newTestApp(t, "@daily")
	ctx := context.Background()

	text := "temporary"
	_, err := a.NoteService.Create(ctx, "1", &dto.NoteCreateRequest{Text: &text})
	require.NoError(t, err)
	require.NoError(t, a.NoteService.Delete(ctx, "1", "1"))

	notes, err := a.NoteRepo.ListByUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, notes, 3)

	task, err := NewDemoResetTask(a)
	require.NoError(t, err)
	require.NoError(t, task.Run(ctx))

	notes, err = a.NoteRepo.ListByUser(ctx, "1")
	require.NoError(t, err)
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids)
}

func TestManager_RegisterTasks(t *testing.T) {
	m := NewManager(zap.NewNop(), safe_close.NewSafeClose(), newTestApp(t, "@every 30m"))
	require.NoError(t, m.RegisterTasks())
	assert.Equal(t, 1, m.Scheduler().Len())

	disabled := NewManager(zap.NewNop(), safe_close.NewSafeClose(), newTestApp(t, ""))
	require.NoError(t, disabled.RegisterTasks())
	assert.Equal(t, 0, disabled.Scheduler().Len())

	broken := NewManager(zap.NewNop(), safe_close.NewSafeClose(), newTestApp(t, "61 * * * *"))
	assert.Error(t, broken.RegisterTasks())
}
