package actor

import (
	"Realm/internal/city/actors"
	"Realm/modules/kit/errx"
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const (
	defaultAskTimeout = 5 * time.Second
	defaultIdle       = 2 * time.Minute
)

var ErrRuntimeClosed = errx.NewSys(errx.CodeUnavailable, "city runtime 未初始化")

// Runtime 同一城市的命令串行执行，不同城市之间并行。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(idle, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	if idle <= 0 {
		idle = defaultIdle
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	// manager 只做路由和回收，不跑业务
	manager := root.Spawn(protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(idle)
	}))

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Do 把 fn 投递到 cityID 对应的 actor 执行并等待结果。
func (r *Runtime) Do(ctx context.Context, cityID int, fn func(ctx context.Context) (any, error)) (any, error) {
	if r == nil || r.root == nil {
		return nil, ErrRuntimeClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := &actors.Command{CityID: cityID, Ctx: ctx, Run: fn}
	res, err := r.root.RequestFuture(r.manager, cmd, r.timeoutFromContext(ctx)).Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithData("city_id", cityID).WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithData("city_id", cityID).WithCause(err)
	}

	out, ok := res.(*actors.Result)
	if !ok || out == nil {
		return nil, errx.ErrInternal.WithData("city_id", cityID)
	}
	return out.Value, out.Err
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
