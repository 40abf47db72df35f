package actor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"Realm/modules/kit/errx"
)

func TestDo_返回值与错误透传(t *testing.T) {
	r := NewRuntime(time.Minute, time.Second)
	defer r.Shutdown()

	v, err := r.Do(context.Background(), 1, func(ctx context.Context) (any, error) { return 42, nil })
	if err != nil || v.(int) != 42 {
		t.Fatalf("期望 42, got=%v err=%v", v, err)
	}

	want := errx.NewBiz("X", "boom")
	_, err = r.Do(context.Background(), 1, func(ctx context.Context) (any, error) { return nil, want })
	if !errors.Is(err, want) {
		t.Fatalf("期望透传业务错误, got=%v", err)
	}
}

func TestDo_同城串行(t *testing.T) {
	r := NewRuntime(time.Minute, 5*time.Second)
	defer r.Shutdown()

	var inFlight, maxSeen int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Do(context.Background(), 7, func(ctx context.Context) (any, error) {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					old := atomic.LoadInt32(&maxSeen)
					if n <= old || atomic.CompareAndSwapInt32(&maxSeen, old, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil, nil
			})
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("期望同一城市并发度为 1, got=%d", maxSeen)
	}
}

func TestDo_不同城市并行(t *testing.T) {
	r := NewRuntime(time.Minute, 5*time.Second)
	defer r.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	go func() {
		_, _ = r.Do(context.Background(), 1, func(ctx context.Context) (any, error) {
			started <- struct{}{}
			<-release
			return nil, nil
		})
	}()
	<-started

	done := make(chan struct{})
	go func() {
		_, _ = r.Do(context.Background(), 2, func(ctx context.Context) (any, error) { return nil, nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("期望城市 2 不被城市 1 阻塞")
	}
	close(release)
}

func TestDo_空闲回收后继续可用(t *testing.T) {
	r := NewRuntime(20*time.Millisecond, 2*time.Second)
	defer r.Shutdown()

	var calls int32
	for i := 0; i < 5; i++ {
		_, err := r.Do(context.Background(), 3, func(ctx context.Context) (any, error) {
			atomic.AddInt32(&calls, 1)
			return nil, nil
		})
		if err != nil {
			t.Fatalf("第 %d 次调用失败: %v", i, err)
		}
		time.Sleep(30 * time.Millisecond)
	}
	if calls != 5 {
		t.Fatalf("期望 5 次执行, got=%d", calls)
	}
}

func TestDo_上下文已取消不执行(t *testing.T) {
	r := NewRuntime(time.Minute, time.Second)
	defer r.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran bool
	_, err := r.Do(ctx, 1, func(ctx context.Context) (any, error) {
		ran = true
		return nil, nil
	})
	if err == nil || ran {
		t.Fatalf("期望取消的请求不执行, err=%v ran=%v", err, ran)
	}
}

func TestDo_非法城市ID(t *testing.T) {
	r := NewRuntime(time.Minute, time.Second)
	defer r.Shutdown()

	if _, err := r.Do(context.Background(), 0, func(ctx context.Context) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("期望 cityID=0 被拒绝")
	}
}

func TestDo_panic转为错误(t *testing.T) {
	r := NewRuntime(time.Minute, time.Second)
	defer r.Shutdown()

	_, err := r.Do(context.Background(), 9, func(ctx context.Context) (any, error) { panic("x") })
	if !errors.Is(err, errx.ErrInternal) {
		t.Fatalf("期望 ErrInternal, got=%v", err)
	}
	if _, err := r.Do(context.Background(), 9, func(ctx context.Context) (any, error) { return 1, nil }); err != nil {
		t.Fatalf("期望 panic 后 actor 仍可用, got=%v", err)
	}
}
