// 环路模拟器：外部交通引擎的队列级替身
// 只维护各movement的排队计数与应急车辆的粗粒度位置，不模拟车辆运动学，
// 用于开发演示与测试；生产部署时由真实的交通仿真引擎实现同一接口
package simulator

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/randengine"
)

// evState 应急车辆状态
type evState struct {
	junction entity.IntersectionID // 接近中的路口
	movement entity.MovementID     // 所在进近movement
	crossed  bool                  // 是否已通过停车线（通过后离场）
}

// junctionState 路口状态
type junctionState struct {
	defs  []entity.PhaseDefinition
	phase int
}

// Simulator 环路模拟器
// 功能：实现entity.ITrafficPort与vehicle.IInjector，
// 按伯努利到达积累各movement的排队，在绿灯时有界放行
type Simulator struct {
	generator *randengine.Engine
	arrival   map[entity.MovementID]float64 // 每步到达概率
	discharge int                           // 绿灯movement每步放行车辆数
	dt        float64
	t         float64

	order     []entity.IntersectionID
	junctions map[entity.IntersectionID]*junctionState

	moveOrder []entity.MovementID
	queues    map[entity.MovementID]int

	evJunction entity.IntersectionID // 注入车辆的固定进近路口
	evMovement entity.MovementID     // 注入车辆的固定进近movement

	vehicleOrder []entity.VehicleID
	vehicles     map[entity.VehicleID]*evState
}

// NewCross 创建单个十字路口的环路模拟器
// 功能：构建经典四相位十字路口J1（0=东西绿、1=东西黄、2=南北绿、3=南北黄），
// 进近movement为WN/EN（东西）与NN/SN（南北），应急车辆固定从WN注入
// 参数：cfg-模拟器配置，dt-每步时间间隔
func NewCross(cfg config.Simulator, dt float64) *Simulator {
	moveOrder := []entity.MovementID{"WN", "EN", "NN", "SN"}
	defs := []entity.PhaseDefinition{
		{Served: []entity.MovementID{"WN", "EN"}, Stable: true},
		{Stable: false},
		{Served: []entity.MovementID{"NN", "SN"}, Stable: true},
		{Stable: false},
	}
	discharge := cfg.Discharge
	if discharge <= 0 {
		discharge = 1
	}
	s := &Simulator{
		generator: randengine.New(cfg.Seed),
		arrival:   make(map[entity.MovementID]float64),
		discharge: discharge,
		dt:        dt,
		order:     []entity.IntersectionID{"J1"},
		junctions: map[entity.IntersectionID]*junctionState{
			"J1": {defs: defs},
		},
		moveOrder: moveOrder,
		queues: lo.SliceToMap(moveOrder, func(m entity.MovementID) (entity.MovementID, int) {
			return m, 0
		}),
		evJunction:   "J1",
		evMovement:   "WN",
		vehicleOrder: make([]entity.VehicleID, 0),
		vehicles:     make(map[entity.VehicleID]*evState),
	}
	for m, p := range cfg.Arrival {
		s.arrival[entity.MovementID(m)] = p
	}
	return s
}

// ControlledIntersections 受控路口列表
func (s *Simulator) ControlledIntersections() []entity.IntersectionID {
	return s.order
}

// PhaseDefinitions 指定路口的有序相位定义
func (s *Simulator) PhaseDefinitions(id entity.IntersectionID) ([]entity.PhaseDefinition, error) {
	j, ok := s.junctions[id]
	if !ok {
		return nil, fmt.Errorf("simulator: unknown junction %s", id)
	}
	return j.defs, nil
}

// CurrentPhase 指定路口当前相位下标
func (s *Simulator) CurrentPhase(id entity.IntersectionID) (int, error) {
	j, ok := s.junctions[id]
	if !ok {
		return 0, fmt.Errorf("simulator: unknown junction %s", id)
	}
	return j.phase, nil
}

// SetPhase 设置指定路口的相位
func (s *Simulator) SetPhase(id entity.IntersectionID, index int) error {
	j, ok := s.junctions[id]
	if !ok {
		return fmt.Errorf("simulator: unknown junction %s", id)
	}
	if index < 0 || index >= len(j.defs) {
		return fmt.Errorf("simulator: junction %s phase index %d out of range [0, %d)", id, index, len(j.defs))
	}
	j.phase = index
	return nil
}

// MovementDemand 指定movement的排队车辆数（含排队中的应急车辆）
func (s *Simulator) MovementDemand(m entity.MovementID) (int, error) {
	q, ok := s.queues[m]
	if !ok {
		return 0, fmt.Errorf("simulator: unknown movement %s", m)
	}
	n := q
	for _, v := range s.vehicleOrder {
		if st := s.vehicles[v]; !st.crossed && st.movement == m {
			n++
		}
	}
	return n, nil
}

// ActiveVehicles 当前在场（未通过停车线）的车辆
func (s *Simulator) ActiveVehicles() []entity.VehicleID {
	return lo.Filter(s.vehicleOrder, func(v entity.VehicleID, _ int) bool {
		return !s.vehicles[v].crossed
	})
}

// NextIntersection 车辆接近中的下一个受控路口与movement
func (s *Simulator) NextIntersection(v entity.VehicleID) (entity.IntersectionID, entity.MovementID, bool) {
	st, ok := s.vehicles[v]
	if !ok || st.crossed {
		return "", "", false
	}
	return st.junction, st.movement, true
}

// AdvanceTimeOneTick 推进一步
// 算法说明：
// 1. 各movement按到达概率做伯努利试验，命中则排队+1
// 2. 当前相位为稳定相位的路口：放行其served movement最多discharge辆，
//    排队中的应急车辆在绿灯时通过停车线并离场
func (s *Simulator) AdvanceTimeOneTick() {
	s.t += s.dt
	for _, m := range s.moveOrder {
		if p := s.arrival[m]; p > 0 && s.generator.PTrue(p) {
			s.queues[m]++
		}
	}
	for _, id := range s.order {
		j := s.junctions[id]
		def := j.defs[j.phase]
		if !def.Stable {
			continue
		}
		for _, m := range def.Served {
			if released := min(s.discharge, s.queues[m]); released > 0 {
				s.queues[m] -= released
			}
			for _, v := range s.vehicleOrder {
				if st := s.vehicles[v]; !st.crossed && st.junction == id && st.movement == m {
					st.crossed = true
				}
			}
		}
	}
}

// CurrentTime 当前仿真时间（秒）
func (s *Simulator) CurrentTime() float64 {
	return s.t
}

// Inject 注入一辆应急车辆（vehicle.IInjector实现）
// 说明：车辆从固定进近movement加入，路线即穿过该路口
func (s *Simulator) Inject(id entity.VehicleID) error {
	if _, ok := s.vehicles[id]; ok {
		return fmt.Errorf("simulator: vehicle %s already exists", id)
	}
	s.vehicles[id] = &evState{junction: s.evJunction, movement: s.evMovement}
	s.vehicleOrder = append(s.vehicleOrder, id)
	return nil
}

// TotalQueued 全部movement的排队总数（含排队中的应急车辆）
func (s *Simulator) TotalQueued() int {
	total := lo.Sum(lo.Values(s.queues))
	for _, v := range s.vehicleOrder {
		if !s.vehicles[v].crossed {
			total++
		}
	}
	return total
}
