package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/junction"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/vehicle"
)

type position struct {
	junction entity.IntersectionID
	movement entity.MovementID
}

// routePort 只提供车辆位置查询的最小port实现
type routePort struct {
	next map[entity.VehicleID]position
}

func (p *routePort) ControlledIntersections() []entity.IntersectionID { return nil }
func (p *routePort) PhaseDefinitions(id entity.IntersectionID) ([]entity.PhaseDefinition, error) {
	return nil, nil
}
func (p *routePort) CurrentPhase(id entity.IntersectionID) (int, error) { return 0, nil }

func (p *routePort) SetPhase(id entity.IntersectionID, index int) error { return nil }

func (p *routePort) MovementDemand(m entity.MovementID) (int, error) { return 0, nil }

func (p *routePort) ActiveVehicles() []entity.VehicleID { return nil }

func (p *routePort) AdvanceTimeOneTick() {}

func (p *routePort) CurrentTime() float64 { return 0 }

func (p *routePort) NextIntersection(v entity.VehicleID) (entity.IntersectionID, entity.MovementID, bool) {
	pos, ok := p.next[v]
	if !ok {
		return "", "", false
	}
	return pos.junction, pos.movement, true
}

func crossPlan(t *testing.T) *junction.Plan {
	p, err := junction.NewPlan("J1", []entity.PhaseDefinition{
		{Served: []entity.MovementID{"WN", "EN"}, Stable: true},
		{Stable: false},
		{Served: []entity.MovementID{"NN", "SN"}, Stable: true},
		{Stable: false},
	})
	require.NoError(t, err)
	return p
}

func TestResolveApproachingVehicle(t *testing.T) {
	port := &routePort{next: map[entity.VehicleID]position{
		"ev-1": {"J1", "NN"},
	}}
	r := vehicle.NewResolver(nil)

	required, ok := r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-1"})
	assert.True(t, ok)
	assert.Equal(t, 2, required)
}

func TestResolveIgnoresOtherJunctions(t *testing.T) {
	port := &routePort{next: map[entity.VehicleID]position{
		"ev-1": {"J2", "NN"}, // 下一个路口不是J1
	}}
	r := vehicle.NewResolver(nil)

	_, ok := r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-1"})
	assert.False(t, ok)
}

func TestResolveVehicleWithoutNextIntersection(t *testing.T) {
	port := &routePort{}
	r := vehicle.NewResolver(nil)
	_, ok := r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-1"})
	assert.False(t, ok)
}

func TestResolveUnmodeledApproachFallsThrough(t *testing.T) {
	// 被选中的车辆在未建模的进近上：对它不发起抢占，继续考察其余车辆
	port := &routePort{next: map[entity.VehicleID]position{
		"ev-1": {"J1", "XX"},
		"ev-2": {"J1", "WN"},
	}}
	r := vehicle.NewResolver(nil)

	required, ok := r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-1", "ev-2"})
	assert.True(t, ok)
	assert.Equal(t, 0, required)
}

func TestResolveFirstComeTieBreak(t *testing.T) {
	// 已知局限：多车同时接近时按登记顺序满足第一辆
	port := &routePort{next: map[entity.VehicleID]position{
		"ev-1": {"J1", "WN"},
		"ev-2": {"J1", "NN"},
	}}
	r := vehicle.NewResolver(nil)

	required, ok := r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-1", "ev-2"})
	assert.True(t, ok)
	assert.Equal(t, 0, required)

	// 登记顺序颠倒则结论颠倒
	required, ok = r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-2", "ev-1"})
	assert.True(t, ok)
	assert.Equal(t, 2, required)
}

// lastArbiter 取最后一辆，验证仲裁策略可替换
type lastArbiter struct{}

func (lastArbiter) Pick(approaches []vehicle.Approach) vehicle.Approach {
	return approaches[len(approaches)-1]
}

func TestResolveReplaceableArbiter(t *testing.T) {
	port := &routePort{next: map[entity.VehicleID]position{
		"ev-1": {"J1", "WN"},
		"ev-2": {"J1", "NN"},
	}}
	r := vehicle.NewResolver(lastArbiter{})

	required, ok := r.Resolve(port, "J1", crossPlan(t), []entity.VehicleID{"ev-1", "ev-2"})
	assert.True(t, ok)
	assert.Equal(t, 2, required)
}
