package vehicle

import (
	"github.com/samber/lo"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
)

// ActiveSet 活跃应急车辆集合
// 功能：维护已登记且仍在外部引擎中的应急车辆，按登记顺序存储
// 说明：除路口运行时状态外唯一的可变共享集合，只在tick内被调度循环修改；
// 登记顺序同时是first-come抢占仲裁的遍历顺序
type ActiveSet struct {
	order []entity.VehicleID
	set   map[entity.VehicleID]struct{}
}

// NewActiveSet 创建空的活跃集合
func NewActiveSet() *ActiveSet {
	return &ActiveSet{
		order: make([]entity.VehicleID, 0),
		set:   make(map[entity.VehicleID]struct{}),
	}
}

// Register 登记应急车辆（重复登记忽略）
func (s *ActiveSet) Register(id entity.VehicleID) {
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
	log.Infof("emergency vehicle %s registered", id)
}

// Refresh 按外部引擎的在场车辆列表刷新集合
// 功能：剔除已不在场的车辆（到达或离开），返回被剔除的车辆
func (s *ActiveSet) Refresh(present []entity.VehicleID) (removed []entity.VehicleID) {
	presentSet := lo.SliceToMap(present, func(id entity.VehicleID) (entity.VehicleID, struct{}) {
		return id, struct{}{}
	})
	removed = lo.Filter(s.order, func(id entity.VehicleID, _ int) bool {
		_, ok := presentSet[id]
		return !ok
	})
	if len(removed) == 0 {
		return nil
	}
	s.order = lo.Filter(s.order, func(id entity.VehicleID, _ int) bool {
		_, ok := presentSet[id]
		return ok
	})
	for _, id := range removed {
		delete(s.set, id)
		log.Debugf("emergency vehicle %s left the simulation, deregistered", id)
	}
	return removed
}

// Vehicles 按登记顺序返回全部活跃车辆
func (s *ActiveSet) Vehicles() []entity.VehicleID {
	return s.order
}

// Len 活跃车辆数量
func (s *ActiveSet) Len() int {
	return len(s.order)
}
