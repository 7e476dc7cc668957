package carousel

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/projects"
)

func entries(n int) []projects.Entry {
	out := make([]projects.Entry, n)
	for i := range out {
		out[i] = projects.Entry{ID: i + 1, Title: fmt.Sprintf("p%d", i+1), CodeLink: "x"}
	}
	return out
}

func newController(t *testing.T, n int, opts ...Option) *Controller {
	t.Helper()
	c, err := New(entries(n), opts...)
	require.NoError(t, err)
	t.Cleanup(c.Stop)
	return c
}

func TestNew_Empty(t *testing.T) {
	c, err := New(nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNew_StartsAtZero(t *testing.T) {
	c := newController(t, 4)
	assert.Equal(t, 0, c.Current())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, DefaultInterval, c.Interval())
	assert.Equal(t, "p1", c.Focused().Title)
}

func TestNew_CopiesEntries(t *testing.T) {
	in := entries(3)
	c, err := New(in)
	require.NoError(t, err)
	in[0].Title = "mutated"
	assert.Equal(t, "p1", c.Entries()[0].Title)
}

func TestAdvanceRetreat_Wrap(t *testing.T) {
	c := newController(t, 3)
	c.Retreat()
	assert.Equal(t, 2, c.Current())
	c.Advance()
	assert.Equal(t, 0, c.Current())
	c.Advance()
	c.Advance()
	assert.Equal(t, 2, c.Current())
	c.Advance()
	assert.Equal(t, 0, c.Current())
}

func TestIndexStaysInRange(t *testing.T) {
	for count := 1; count <= 7; count++ {
		c := newController(t, count)
		// Deterministic mixed walk.
		for step := 0; step < 200; step++ {
			if (step*7+count)%3 == 0 {
				c.Retreat()
			} else {
				c.Advance()
			}
			cur := c.Current()
			require.GreaterOrEqual(t, cur, 0)
			require.Less(t, cur, count)
		}
	}
}

func TestAdvance_FullCycleReturnsToStart(t *testing.T) {
	for count := 1; count <= 6; count++ {
		c := newController(t, count)
		c.Focus(count / 2)
		start := c.Current()
		for i := 0; i < count; i++ {
			c.Advance()
		}
		assert.Equal(t, start, c.Current(), "count=%d", count)
	}
}

func TestFocus_Wraps(t *testing.T) {
	c := newController(t, 5)
	c.Focus(7)
	assert.Equal(t, 2, c.Current())
	c.Focus(-1)
	assert.Equal(t, 4, c.Current())
}

func TestPosition_FiveEntries(t *testing.T) {
	c := newController(t, 5)
	c.Focus(2)
	assert.Equal(t, Left, c.PositionOf(1))
	assert.Equal(t, Right, c.PositionOf(3))
	assert.Equal(t, Hidden, c.PositionOf(0))
	assert.Equal(t, Hidden, c.PositionOf(4))
	assert.Equal(t, Center, c.PositionOf(2))
}

func TestPosition_WrapsAtEdges(t *testing.T) {
	assert.Equal(t, Left, Position(0, 4, 5))
	assert.Equal(t, Right, Position(0, 1, 5))
	assert.Equal(t, Right, Position(4, 0, 5))
	assert.Equal(t, Left, Position(4, 3, 5))
}

func TestPosition_FewerThanThree(t *testing.T) {
	for current := 0; current < 2; current++ {
		for index := 0; index < 2; index++ {
			role := Position(current, index, 2)
			if index == current {
				assert.Equal(t, Center, role)
			} else {
				assert.Equal(t, Hidden, role)
			}
		}
	}
	assert.Equal(t, Center, Position(0, 0, 1))
}

func TestPosition_ThreeEntriesHasBothNeighbours(t *testing.T) {
	assert.Equal(t, Left, Position(1, 0, 3))
	assert.Equal(t, Right, Position(1, 2, 3))
}

func TestPosition_PureAndSingleCenter(t *testing.T) {
	for count := 1; count <= 8; count++ {
		for current := 0; current < count; current++ {
			centers := 0
			for index := 0; index < count; index++ {
				a := Position(current, index, count)
				b := Position(current, index, count)
				require.Equal(t, a, b)
				if a == Center {
					centers++
				}
			}
			assert.Equal(t, 1, centers, "count=%d current=%d", count, current)
		}
	}
}

func TestSlides(t *testing.T) {
	c := newController(t, 4)
	c.Advance()
	slides := c.Slides()
	require.Len(t, slides, 4)
	roles := []Role{Left, Center, Right, Hidden}
	for i, s := range slides {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, i+1, s.Entry.ID)
		assert.Equal(t, roles[i], s.Role)
	}
}

func TestSubscribe(t *testing.T) {
	c := newController(t, 3)
	var got []State
	cancel := c.Subscribe(func(s State) { got = append(got, s) })

	c.Advance()
	c.Retreat()
	cancel()
	cancel()
	c.Advance()

	assert.Equal(t, []State{{Current: 1, Count: 3}, {Current: 0, Count: 3}}, got)
}

func TestAutoplay_Advances(t *testing.T) {
	c := newController(t, 3, WithInterval(10*time.Millisecond))
	var ticks atomic.Int32
	c.Subscribe(func(State) { ticks.Add(1) })

	c.Start()
	assert.True(t, c.Running())
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	c.Stop()
	assert.False(t, c.Running())
}

func TestAutoplay_StartTwiceArmsOneTicker(t *testing.T) {
	c := newController(t, 100, WithInterval(20*time.Millisecond))
	var ticks atomic.Int32
	c.Subscribe(func(State) { ticks.Add(1) })

	c.Start()
	c.Start()
	c.Start()
	time.Sleep(210 * time.Millisecond)
	c.Stop()

	// One ticker gives about ten ticks; three would give about thirty.
	assert.LessOrEqual(t, ticks.Load(), int32(14))
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
}

func TestAutoplay_NoTicksAfterStop(t *testing.T) {
	c := newController(t, 3, WithInterval(5*time.Millisecond))
	c.Start()
	time.Sleep(30 * time.Millisecond)
	c.Stop()
	c.Stop()

	frozen := c.Current()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, c.Current())
}

func TestAutoplay_Restart(t *testing.T) {
	c := newController(t, 3, WithInterval(5*time.Millisecond))
	c.Start()
	c.Stop()
	c.Start()
	assert.True(t, c.Running())
	c.Stop()
}

func TestManualNavigationRacesAutoplay(t *testing.T) {
	c := newController(t, 5, WithInterval(time.Millisecond))
	c.Start()
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if g%2 == 0 {
					c.Advance()
				} else {
					c.Retreat()
				}
				cur := c.Current()
				if cur < 0 || cur >= 5 {
					t.Errorf("index out of range: %d", cur)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	c.Stop()
}
