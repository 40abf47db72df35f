package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
)

// Command 在城市 actor 内串行执行的一段逻辑。
type Command struct {
	CityID int
	Ctx    context.Context
	Run    func(ctx context.Context) (any, error)
}

type Result struct {
	Value any
	Err   error
}

// idleNotice 子 actor 空闲超时后通知 manager 回收。
type idleNotice struct {
	cityID int
	pid    *actor.PID
}
