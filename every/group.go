package every

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/reugn/go-every/logger"
)

// Group manages a set of independent, named schedules that are started
// and stopped together.
type Group struct {
	mtx       sync.Mutex
	schedules map[string]*Schedule
	ctx       context.Context
	started   bool
	run       uint64
	release   func() bool
	logger    logger.Logger
}

// NewGroup returns a new empty Group.
func NewGroup(l logger.Logger) *Group {
	if l == nil {
		l = logger.NoOpLogger{}
	}
	return &Group{
		schedules: make(map[string]*Schedule),
		logger:    l,
	}
}

// Add registers a schedule under name. If the group is started, the
// schedule is started too.
func (g *Group) Add(name string, schedule *Schedule) error {
	if name == "" {
		return illegalArgumentError("schedule name is empty")
	}
	if schedule == nil {
		return illegalArgumentError("schedule is nil")
	}

	g.mtx.Lock()
	defer g.mtx.Unlock()
	if _, ok := g.schedules[name]; ok {
		return illegalArgumentError(fmt.Sprintf("schedule %s already exists", name))
	}
	if g.started {
		if err := schedule.Start(g.ctx); err != nil {
			return fmt.Errorf("start schedule %s: %w", name, err)
		}
	}
	g.schedules[name] = schedule
	g.logger.Debug("Schedule added.", "name", name, "trigger", schedule.Description())
	return nil
}

// Get returns the schedule registered under name.
func (g *Group) Get(name string) (*Schedule, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	schedule, ok := g.schedules[name]
	if !ok {
		return nil, scheduleNotFoundError(name)
	}
	return schedule, nil
}

// Remove stops and unregisters the schedule registered under name.
func (g *Group) Remove(name string) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	schedule, ok := g.schedules[name]
	if !ok {
		return scheduleNotFoundError(name)
	}
	schedule.Stop()
	delete(g.schedules, name)
	g.logger.Debug("Schedule removed.", "name", name)
	return nil
}

// Names returns the sorted names of the registered schedules.
func (g *Group) Names() []string {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	names := make([]string, 0, len(g.schedules))
	for name := range g.schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start starts every registered schedule. Schedules that fail to start
// are reported in the returned error; the others keep running. All
// schedules stop when ctx is done, and the group returns to the
// stopped state.
func (g *Group) Start(ctx context.Context) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	if g.started {
		g.logger.Info("Group is already started.")
		return nil
	}

	var errs []error
	for name, schedule := range g.schedules {
		if err := schedule.Start(ctx); err != nil {
			errs = append(errs, fmt.Errorf("start schedule %s: %w", name, err))
		}
	}
	g.ctx = ctx
	g.started = true
	g.run++
	run := g.run
	g.release = context.AfterFunc(ctx, func() { g.done(run) })
	g.logger.Info("Group started.", "schedules", len(g.schedules))
	return errors.Join(errs...)
}

// done resets the run identified by run once its context is done. The
// schedules stop on their own.
func (g *Group) done(run uint64) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	if !g.started || g.run != run {
		return
	}
	g.reset()
	g.logger.Info("Group context done.")
}

// reset must be called with the lock held.
func (g *Group) reset() {
	if g.release != nil {
		g.release()
		g.release = nil
	}
	g.started = false
	g.ctx = nil
}

// Stop stops every registered schedule.
func (g *Group) Stop() {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	if !g.started {
		g.logger.Info("Group is not started.")
		return
	}
	for _, schedule := range g.schedules {
		schedule.Stop()
	}
	g.reset()
	g.logger.Info("Group stopped.")
}

// IsStarted reports whether the group has been started.
func (g *Group) IsStarted() bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.started
}
