package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversNextTickInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e Damaged) { got = append(got, "damaged") })
	Subscribe(b, func(e Killed) { got = append(got, "killed") })

	Emit(b, Damaged{Amount: 5})
	Emit(b, Killed{})
	Emit(b, Damaged{Amount: 1})
	assert.Equal(t, 3, b.Pending())

	// nothing in front before the swap
	assert.Equal(t, 0, b.DispatchAll())
	assert.Empty(t, got)

	b.SwapBuffers()
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, 3, b.DispatchAll())
	assert.Equal(t, []string{"damaged", "killed", "damaged"}, got)

	// delivered once only
	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll())
	assert.Len(t, got, 3)
}

func TestBusEmitDuringDispatchWaitsForNextSwap(t *testing.T) {
	b := NewBus()
	kills := 0
	Subscribe(b, func(e Damaged) {
		Emit(b, Killed{Target: e.Target})
	})
	Subscribe(b, func(Killed) { kills++ })

	Emit(b, Damaged{Target: 7})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, kills)
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, kills)
}

func TestBusEventsWithoutHandlersAreDropped(t *testing.T) {
	b := NewBus()
	Emit(b, WeaponFired{Weapon: "rifle"})
	b.SwapBuffers()
	assert.Equal(t, 1, b.DispatchAll())
}
