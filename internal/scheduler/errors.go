package scheduler

import "errors"

var (
	// ErrInvalidWindow 表示调度窗口本身不合法，例如开始时间晚于结束时间。
	ErrInvalidWindow = errors.New("调度窗口不合法")
	// ErrInvalidParameter 表示策略参数不合法，例如每日上限为零或负数。
	ErrInvalidParameter = errors.New("调度参数不合法")
)
