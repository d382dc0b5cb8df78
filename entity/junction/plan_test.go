package junction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/junction"
)

// 经典四相位十字路口：0=东西绿、1=东西黄、2=南北绿、3=南北黄
func crossDefs() []entity.PhaseDefinition {
	return []entity.PhaseDefinition{
		{Served: []entity.MovementID{"WN", "EN"}, Stable: true},
		{Stable: false},
		{Served: []entity.MovementID{"NN", "SN"}, Stable: true},
		{Stable: false},
	}
}

func TestNewPlan(t *testing.T) {
	p, err := junction.NewPlan("J1", crossDefs())
	require.NoError(t, err)
	assert.Equal(t, entity.IntersectionID("J1"), p.ID())
	assert.Equal(t, 4, p.Len())
	assert.True(t, p.IsStable(0))
	assert.False(t, p.IsStable(1))
	// 循环衔接
	assert.Equal(t, 0, p.NextIndex(3))
	assert.Equal(t, 1, p.NextIndex(0))
}

func TestNewPlanRejectsEmpty(t *testing.T) {
	_, err := junction.NewPlan("J1", nil)
	assert.Error(t, err)
}

func TestNewPlanRejectsOddLength(t *testing.T) {
	defs := crossDefs()[:3]
	_, err := junction.NewPlan("J1", defs)
	assert.Error(t, err)
}

func TestNewPlanRejectsBrokenAlternation(t *testing.T) {
	defs := crossDefs()
	defs[1].Stable = true // 两个稳定相位相邻
	_, err := junction.NewPlan("J1", defs)
	assert.Error(t, err)

	defs = crossDefs()
	defs[0].Stable = false // 首相位必须稳定，否则循环衔接处交替被破坏
	defs[1].Stable = true
	defs[2].Stable = false
	defs[3].Stable = true
	_, err = junction.NewPlan("J1", defs)
	assert.Error(t, err)
}

func TestStablePhaseServing(t *testing.T) {
	p, err := junction.NewPlan("J1", crossDefs())
	require.NoError(t, err)

	idx, ok := p.StablePhaseServing("NN")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = p.StablePhaseServing("WN")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// 未建模的进近：没有放行相位
	_, ok = p.StablePhaseServing("XX")
	assert.False(t, ok)
}

func TestCompetingStable(t *testing.T) {
	p, err := junction.NewPlan("J1", crossDefs())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, p.CompetingStable(0))
	assert.Equal(t, []int{0}, p.CompetingStable(2))
	assert.Equal(t, []int{0, 2}, p.CompetingStable(1))
}
