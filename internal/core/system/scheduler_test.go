package system

import (
	"testing"

	"github.com/strikezone/server/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

type fakeSystem struct {
	name string
	deps []string
	rec  *recorder
}

func (s *fakeSystem) Name() string           { return s.name }
func (s *fakeSystem) Dependencies() []string { return s.deps }
func (s *fakeSystem) Init(*ecs.World)        { s.rec.calls = append(s.rec.calls, "init:"+s.name) }
func (s *fakeSystem) Cleanup(*ecs.World)     { s.rec.calls = append(s.rec.calls, "cleanup:"+s.name) }
func (s *fakeSystem) Update(_ *ecs.World, _, _ float64) {
	s.rec.calls = append(s.rec.calls, s.name)
}

// nameOnly implements no hooks at all.
type nameOnly string

func (n nameOnly) Name() string { return string(n) }

func newFake(rec *recorder, name string, deps ...string) *fakeSystem {
	return &fakeSystem{name: name, deps: deps, rec: rec}
}

func TestSchedulerThreeSystemChain(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	require.NoError(t, s.Register(newFake(rec, "c", "b")))
	require.NoError(t, s.Register(newFake(rec, "b", "a")))
	require.NoError(t, s.Register(newFake(rec, "a")))

	s.Tick(ecs.NewWorld(), 1.0/60, 0)
	assert.Equal(t, []string{"a", "b", "c"}, rec.calls)
}

func TestSchedulerScrambledRegistration(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	require.NoError(t, s.Register(newFake(rec, "physics", "movement")))
	require.NoError(t, s.Register(newFake(rec, "input")))
	require.NoError(t, s.Register(newFake(rec, "movement", "input")))
	require.NoError(t, s.Validate())

	assert.Equal(t, []string{"input", "movement", "physics"}, s.Names())
}

func TestSchedulerKeepsRegistrationOrderForIndependentSystems(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	for _, n := range []string{"d", "b", "a", "c"} {
		require.NoError(t, s.Register(newFake(rec, n)))
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, s.Names())
}

func TestSchedulerLongTransitiveChain(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	// e <- d <- c <- b <- a, registered in an order a pairwise comparator
	// cannot fix in one pass.
	require.NoError(t, s.Register(newFake(rec, "a", "b")))
	require.NoError(t, s.Register(newFake(rec, "x")))
	require.NoError(t, s.Register(newFake(rec, "c", "d")))
	require.NoError(t, s.Register(newFake(rec, "b", "c")))
	require.NoError(t, s.Register(newFake(rec, "e")))
	require.NoError(t, s.Register(newFake(rec, "d", "e")))

	assert.Equal(t, []string{"x", "e", "d", "c", "b", "a"}, s.Names())
}

func TestSchedulerDetectsCycle(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	require.NoError(t, s.Register(newFake(rec, "a", "c")))
	require.NoError(t, s.Register(newFake(rec, "b", "a")))

	err := s.Register(newFake(rec, "c", "b"))
	require.ErrorIs(t, err, ErrDependencyCycle)
	assert.Contains(t, err.Error(), "c")

	// rolled back
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func TestSchedulerSelfDependencyIsCycle(t *testing.T) {
	s := NewScheduler()
	err := s.Register(newFake(&recorder{}, "loop", "loop"))
	assert.ErrorIs(t, err, ErrDependencyCycle)
	assert.Equal(t, 0, s.Len())
}

func TestSchedulerRejectsDuplicateNames(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Register(nameOnly("a")))
	assert.ErrorIs(t, s.Register(nameOnly("a")), ErrDuplicateSystem)
}

func TestSchedulerValidateUnknownDependency(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Register(newFake(&recorder{}, "movement", "input")))
	assert.ErrorIs(t, s.Validate(), ErrUnknownDependency)

	require.NoError(t, s.Register(newFake(&recorder{}, "input")))
	assert.NoError(t, s.Validate())
	assert.Equal(t, []string{"input", "movement"}, s.Names())
}

func TestSchedulerHooksAreOptional(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	require.NoError(t, s.Register(nameOnly("bare")))
	require.NoError(t, s.Register(newFake(rec, "full", "bare")))

	w := ecs.NewWorld()
	s.InitAll(w)
	s.Tick(w, 0.1, 0.1)
	s.CleanupAll(w)
	assert.Equal(t, []string{"init:full", "full", "cleanup:full"}, rec.calls)
}

func TestSchedulerUnregister(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler()
	require.NoError(t, s.Register(newFake(rec, "a")))
	require.NoError(t, s.Register(newFake(rec, "b", "a")))
	require.NoError(t, s.Register(newFake(rec, "c", "b")))

	assert.True(t, s.Unregister("b"))
	assert.False(t, s.Unregister("b"))
	assert.Equal(t, []string{"a", "c"}, s.Names())
	assert.ErrorIs(t, s.Validate(), ErrUnknownDependency)
}
