package actors

import (
	"Realm/modules/kit/errx"
	"time"

	"github.com/asynkron/protoactor-go/actor"
)

type pendingCmd struct {
	msg    *Command
	sender *actor.PID
}

type cityEntry struct {
	pid      *actor.PID
	draining bool
	pending  []pendingCmd
}

// ManagerActor 按 cityID 路由命令，空闲的城市 actor 会被回收。
type ManagerActor struct {
	idle   time.Duration
	cities map[int]*cityEntry
}

func NewManagerActor(idle time.Duration) *ManagerActor {
	return &ManagerActor{
		idle:   idle,
		cities: make(map[int]*cityEntry),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Command:
		if msg == nil || msg.CityID <= 0 {
			ctx.Respond(&Result{Err: errx.ErrReqParamERR})
			return
		}
		m.route(ctx, msg)
	case *idleNotice:
		e, ok := m.cities[msg.cityID]
		if !ok || e.draining || !samePID(e.pid, msg.pid) {
			return
		}
		// Poison 排在已转发的命令之后，邮箱里的命令仍会处理完
		e.draining = true
		ctx.Poison(e.pid)
	case *actor.Terminated:
		m.onTerminated(ctx, msg.Who)
	}
}

func (m *ManagerActor) route(ctx actor.Context, msg *Command) {
	e, ok := m.cities[msg.CityID]
	if !ok {
		e = &cityEntry{pid: m.spawn(ctx, msg.CityID)}
		m.cities[msg.CityID] = e
	}
	if e.draining {
		e.pending = append(e.pending, pendingCmd{msg: msg, sender: ctx.Sender()})
		return
	}
	ctx.Forward(e.pid)
}

func (m *ManagerActor) onTerminated(ctx actor.Context, who *actor.PID) {
	for cityID, e := range m.cities {
		if !samePID(e.pid, who) {
			continue
		}
		delete(m.cities, cityID)
		if len(e.pending) == 0 {
			return
		}
		pid := m.spawn(ctx, cityID)
		m.cities[cityID] = &cityEntry{pid: pid}
		for _, p := range e.pending {
			ctx.RequestWithCustomSender(pid, p.msg, p.sender)
		}
		return
	}
}

func (m *ManagerActor) spawn(ctx actor.Context, cityID int) *actor.PID {
	idle := m.idle
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCityActor(cityID, idle)
	})
	return ctx.Spawn(props)
}

func samePID(a, b *actor.PID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Address == b.Address && a.Id == b.Id
}
