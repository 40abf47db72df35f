package actors

import (
	"Realm/modules/kit/errx"
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
)

// CityActor 同一城市的写操作在这里排队，一次只跑一个。
type CityActor struct {
	cityID int
	idle   time.Duration
}

func NewCityActor(cityID int, idle time.Duration) *CityActor {
	return &CityActor{cityID: cityID, idle: idle}
}

func (a *CityActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.armIdle(ctx)
	case *actor.ReceiveTimeout:
		ctx.Send(ctx.Parent(), &idleNotice{cityID: a.cityID, pid: ctx.Self()})
	case *Command:
		ctx.Respond(a.run(msg))
		a.armIdle(ctx)
	}
}

func (a *CityActor) run(cmd *Command) (res *Result) {
	if cmd.Run == nil {
		return &Result{Err: errx.ErrInternal.WithData("city_id", a.cityID)}
	}
	c := cmd.Ctx
	if c == nil {
		c = context.Background()
	}
	// 调用方已放弃等待
	if err := c.Err(); err != nil {
		return &Result{Err: errx.ErrTimeout.WithCause(err)}
	}
	defer func() {
		if r := recover(); r != nil {
			res = &Result{Err: errx.ErrInternal.WithData("city_id", a.cityID).WithData("panic", r)}
		}
	}()
	v, err := cmd.Run(c)
	return &Result{Value: v, Err: err}
}

// ReceiveTimeout 触发后会被取消，处理完命令需要重新挂上。
func (a *CityActor) armIdle(ctx actor.Context) {
	if a.idle > 0 {
		ctx.SetReceiveTimeout(a.idle)
	}
}
