package royalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeAddr(seed byte) Address {
	var addr Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func TestShiftWindow_GrowsUntilCapacity(t *testing.T) {
	state := &AssetState{Config: validConfig(), Window: []Address{makeAddr(1)}}

	state.ShiftWindow(makeAddr(2))
	assert.Equal(t, []Address{makeAddr(1), makeAddr(2)}, state.Window)

	state.ShiftWindow(makeAddr(3))
	assert.Equal(t, []Address{makeAddr(1), makeAddr(2), makeAddr(3)}, state.Window)
}

func TestShiftWindow_EvictsOldestAtCapacity(t *testing.T) {
	state := &AssetState{Config: validConfig(), Window: []Address{makeAddr(1)}}
	for seed := byte(2); seed <= 6; seed++ {
		state.ShiftWindow(makeAddr(seed))
	}

	// Capacity 3: only the last three recipients remain, oldest first.
	assert.Equal(t, []Address{makeAddr(4), makeAddr(5), makeAddr(6)}, state.Window)
}

func TestShiftWindow_NeverExceedsCapacity(t *testing.T) {
	state := &AssetState{Config: validConfig(), Window: []Address{makeAddr(0)}}
	for i := 0; i < 50; i++ {
		state.ShiftWindow(makeAddr(byte(i + 1)))
		assert.LessOrEqual(t, len(state.Window), int(state.Config.GenerationCount))
	}
}

func TestShiftWindow_CapacityOne(t *testing.T) {
	state := &AssetState{
		Config: Config{GenerationCount: 1, ProfitSharePercent: validConfig().ProfitSharePercent, SuccessiveRatio: validConfig().SuccessiveRatio},
		Window: []Address{makeAddr(1)},
	}
	state.ShiftWindow(makeAddr(2))
	assert.Equal(t, []Address{makeAddr(2)}, state.Window)
}

func TestClone_Independent(t *testing.T) {
	state := &AssetState{Config: validConfig(), Window: []Address{makeAddr(1), makeAddr(2)}}
	clone := state.Clone()

	state.ShiftWindow(makeAddr(3))
	assert.Equal(t, []Address{makeAddr(1), makeAddr(2)}, clone.Window)
}
