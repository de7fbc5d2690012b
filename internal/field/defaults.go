package field

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type requestTimeKey struct{}

// WithRequestTime 固定当前请求的时间，created/changed 默认值取自该时间
func WithRequestTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// RequestTime 返回当前请求时间，未设置时为当前时间
func RequestTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func requestTimestamp(ctx context.Context) interface{} {
	return RequestTime(ctx).Unix()
}

func newUUID(context.Context) interface{} {
	return uuid.NewString()
}
