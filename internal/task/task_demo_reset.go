package task

import (
	"context"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/logger"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DemoResetTask 按 cron 计划把存储恢复为初始示例数据
type DemoResetTask struct {
	app      *app.App
	logger   *zap.Logger
	schedule cron.Schedule
}

// Name 返回任务名称
func (t *DemoResetTask) Name() string {
	return "DemoReset"
}

// Schedule 返回执行计划
func (t *DemoResetTask) Schedule() cron.Schedule {
	return t.schedule
}

// IsStartupRun 启动时已由 run 命令播种，这里不再重复执行
func (t *DemoResetTask) IsStartupRun() bool {
	return false
}

// Run 执行重置
func (t *DemoResetTask) Run(ctx context.Context) error {
	if err := t.app.ResetStore(ctx); err != nil {
		return err
	}
	t.logger.Info("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.String("type", "loopRun"),
		zap.String("msg", "success"))
	return nil
}

// NewDemoResetTask 创建重置任务，app.demo-reset-cron 为空时返回 nil
// 支持标准五段 cron 表达式以及 @every / @daily 等描述符
func NewDemoResetTask(appContainer *app.App) (Task, error) {
	expr := appContainer.Config().App.DemoResetCron
	if expr == "" {
		return nil, nil
	}

	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse demo-reset-cron %q failed", expr)
	}

	return &DemoResetTask{
		app:      appContainer,
		logger:   appContainer.Logger(),
		schedule: schedule,
	}, nil
}

func init() {
	RegisterWithApp(NewDemoResetTask)
}
