package common

import (
	"context"
	"database/sql"
	"errors"
)

// IsTemporary 判断是否为临时性错误
func IsTemporary(err error) bool {
	if temp, ok := err.(interface{ Temporary() bool }); ok {
		return temp.Temporary()
	}
	return false
}

// IsTransient 判断存储层错误是否为瞬时故障。
// 引擎本身不重试，瞬时故障以超时类错误上报，由调用方决定重试策略。
func IsTransient(err error) bool {
	return IsTemporary(err) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded)
}
