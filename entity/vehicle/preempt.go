package vehicle

import (
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/junction"
)

// Approach 正在接近某路口的应急车辆
type Approach struct {
	Vehicle  entity.VehicleID
	Movement entity.MovementID // 车辆当前所在的进近movement
}

// IArbiter 多车抢占仲裁策略（可替换）
// 说明：同一路口同时有多辆应急车辆接近时，决定优先满足哪一辆
type IArbiter interface {
	Pick(approaches []Approach) Approach
}

// FirstComeArbiter 先到先服务仲裁
// 说明：按活跃集合的登记顺序取第一辆，是已知的局限——
// 没有真正的多车优先级仲裁，后登记的车辆要等前一辆清空后才会被满足
type FirstComeArbiter struct{}

func (FirstComeArbiter) Pick(approaches []Approach) Approach {
	return approaches[0]
}

// Resolver 应急抢占解析器
// 功能：找出接近指定路口的应急车辆，计算放行它所需的稳定相位
type Resolver struct {
	arbiter IArbiter
}

// NewResolver 创建抢占解析器
// 参数：arbiter-仲裁策略，nil时使用先到先服务
func NewResolver(arbiter IArbiter) *Resolver {
	if arbiter == nil {
		arbiter = FirstComeArbiter{}
	}
	return &Resolver{arbiter: arbiter}
}

// Resolve 解析指定路口本步的抢占需求
// 功能：遍历活跃应急车辆，筛选下一个受控路口为id的车辆，
// 仲裁后计算其所在movement对应的稳定相位
// 返回：所需稳定相位下标与是否存在可满足的抢占
// 说明：被仲裁选中的车辆若在信控方案中找不到放行相位
// （已过停车线或在未建模的进近上），对它不发起抢占，继续考察其余车辆
func (r *Resolver) Resolve(
	port entity.ITrafficPort, id entity.IntersectionID, plan *junction.Plan, evs []entity.VehicleID,
) (int, bool) {
	approaches := make([]Approach, 0)
	for _, v := range evs {
		next, m, ok := port.NextIntersection(v)
		if !ok || next != id {
			continue
		}
		approaches = append(approaches, Approach{Vehicle: v, Movement: m})
	}
	for len(approaches) > 0 {
		picked := r.arbiter.Pick(approaches)
		if required, ok := plan.StablePhaseServing(picked.Movement); ok {
			return required, true
		}
		log.Debugf("emergency vehicle %s: no stable phase serves movement %s at junction %s",
			picked.Vehicle, picked.Movement, id)
		rest := make([]Approach, 0, len(approaches)-1)
		for _, a := range approaches {
			if a.Vehicle != picked.Vehicle {
				rest = append(rest, a)
			}
		}
		approaches = rest
	}
	return 0, false
}
