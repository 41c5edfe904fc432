package aggregates

import (
	"context"
	"strings"
	"time"

	domainagg "github.com/yungbote/courseview-backend/internal/domain/aggregates"
	"github.com/yungbote/courseview-backend/internal/pkg/dbctx"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	if deps.Log != nil {
		status := "success"
		if mapped != nil {
			status = string(domainagg.CodeOf(mapped))
			if status == "" {
				status = "failure"
			}
		}
		deps.Log.Debug("aggregate write finished", "op", op, "status", status, "duration", time.Since(start))
	}
	return mapped
}
