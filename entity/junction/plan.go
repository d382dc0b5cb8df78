package junction

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
)

// Phase 信控相位
// 说明：稳定相位（绿灯）可变长持续，过渡相位（黄灯/清空）固定时长且不可延长
type Phase struct {
	Served []entity.MovementID // 该相位放行的movement集合
	Stable bool                // 稳定/过渡
}

// Plan 路口信控方案（相位循环序列）
// 功能：静态描述路口的相位顺序与各相位放行的movement，加载后不可变
// 不变式：序列为 稳定→过渡→稳定→… 的严格交替，且首尾循环衔接
type Plan struct {
	id     entity.IntersectionID
	phases []Phase
}

// NewPlan 从外部引擎的相位定义构建信控方案
// 功能：校验相位序列并构建Plan，校验失败属于配置错误（会话不启动）
// 校验规则：
// 1. 序列非空且长度为偶数（否则循环衔接处交替被破坏）
// 2. 偶数下标为稳定相位，奇数下标为过渡相位（严格交替，首相位必须稳定）
func NewPlan(id entity.IntersectionID, defs []entity.PhaseDefinition) (*Plan, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("junction %s: empty phase sequence", id)
	}
	if len(defs)%2 != 0 {
		return nil, fmt.Errorf("junction %s: phase sequence length %d is odd, cyclic alternation is broken", id, len(defs))
	}
	for i, d := range defs {
		if wantStable := i%2 == 0; d.Stable != wantStable {
			return nil, fmt.Errorf("junction %s: phase %d stable=%v breaks stable/transitional alternation", id, i, d.Stable)
		}
	}
	return &Plan{
		id: id,
		phases: lo.Map(defs, func(d entity.PhaseDefinition, _ int) Phase {
			return Phase{Served: d.Served, Stable: d.Stable}
		}),
	}, nil
}

// ID 路口ID
func (p *Plan) ID() entity.IntersectionID {
	return p.id
}

// Len 相位数量
func (p *Plan) Len() int {
	return len(p.phases)
}

// Phase 获取指定下标的相位
func (p *Plan) Phase(i int) Phase {
	return p.phases[i]
}

// InRange 相位下标是否合法
func (p *Plan) InRange(i int) bool {
	return i >= 0 && i < len(p.phases)
}

// NextIndex 循环序列中的下一个相位下标
func (p *Plan) NextIndex(i int) int {
	return (i + 1) % len(p.phases)
}

// IsStable 指定下标是否为稳定相位
func (p *Plan) IsStable(i int) bool {
	return p.phases[i].Stable
}

// StablePhaseServing 查找放行指定movement的第一个稳定相位
// 功能：应急抢占据此计算目标相位；没有匹配时ok为false（不发起抢占）
func (p *Plan) StablePhaseServing(m entity.MovementID) (index int, ok bool) {
	for i, phase := range p.phases {
		if phase.Stable && lo.Contains(phase.Served, m) {
			return i, true
		}
	}
	return 0, false
}

// CompetingStable 除指定下标外的全部稳定相位下标
func (p *Plan) CompetingStable(i int) []int {
	out := make([]int, 0, len(p.phases)/2)
	for k, phase := range p.phases {
		if k != i && phase.Stable {
			out = append(out, k)
		}
	}
	return out
}
