package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	service "github.com/okian/scorecard/internal/app"
	"github.com/okian/scorecard/internal/domain/collector"
	"github.com/okian/scorecard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestService_SessionLifecycle(t *testing.T) {
	Convey("Given a running service with a short TTL", t, func() {
		clk := &clock{now: fixedNow}
		svc := service.New(
			service.WithClock(clk.Now),
			service.WithSessionTTL(time.Minute),
			service.WithSweepInterval(5*time.Millisecond),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		view, err := svc.AddEmployee(ctx, "", model.ScoreCard, "Alice Smith")
		So(err, ShouldBeNil)

		Convey("When the session idles past the TTL", func() {
			clk.Advance(2 * time.Minute)

			Convey("Then the sweeper drops it", func() {
				So(eventually(func() bool { return svc.GetStats()["activeSessions"] == 0 }), ShouldBeTrue)
			})

			Convey("And the old id yields a fresh, empty session", func() {
				next, err := svc.Render(ctx, view.SessionID, model.ScoreCard, collector.Input{})
				So(err, ShouldBeNil)
				So(next.SessionID, ShouldNotEqual, view.SessionID)
				So(next.Record.EmployeeNames, ShouldBeEmpty)
			})
		})

		Convey("When the session stays active", func() {
			clk.Advance(30 * time.Second)
			next, err := svc.Render(ctx, view.SessionID, model.ScoreCard, collector.Input{})

			Convey("Then its names survive", func() {
				So(err, ShouldBeNil)
				So(next.SessionID, ShouldEqual, view.SessionID)
				So(next.Record.EmployeeNames, ShouldResemble, []string{"Alice Smith"})
			})
		})
	})
}

func TestService_ConcurrentSessions(t *testing.T) {
	Convey("Given many users adding names at once", t, func() {
		svc := newService()
		ctx := context.Background()

		const users = 20
		const perUser = 10
		ids := make([]string, users)
		var wg sync.WaitGroup
		for u := 0; u < users; u++ {
			wg.Add(1)
			go func(u int) {
				defer wg.Done()
				id := ""
				for i := 0; i < perUser; i++ {
					view, err := svc.AddEmployee(ctx, id, model.ScoreCard, fmt.Sprintf("user%d-%d", u, i))
					if err != nil {
						return
					}
					id = view.SessionID
				}
				ids[u] = id
			}(u)
		}
		wg.Wait()

		Convey("Then each session holds exactly its own names in order", func() {
			for u, id := range ids {
				view, err := svc.Render(ctx, id, model.ScoreCard, collector.Input{})
				So(err, ShouldBeNil)
				So(view.Record.EmployeeNames, ShouldHaveLength, perUser)
				So(view.Record.EmployeeNames[0], ShouldEqual, fmt.Sprintf("user%d-0", u))
				So(view.Record.EmployeeNames[perUser-1], ShouldEqual, fmt.Sprintf("user%d-%d", u, perUser-1))
			}
			So(svc.GetStats()["activeSessions"], ShouldEqual, users)
		})
	})
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
