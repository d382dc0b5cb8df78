package junction

import (
	"git.fiblab.net/general/common/v2/mathutil"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/container"
)

// Runtime 路口运行时状态
// 说明：会话初始化时创建，只被路口控制逻辑修改，会话停止时丢弃
type Runtime struct {
	Index     int     // 当前相位下标
	StartTime float64 // 当前相位开始时间（秒）
}

// Junction 受控路口
// 功能：持有信控方案与运行时状态，给出常规/抢占两种模式下的相位推进建议
// 安全不变式：建议的目标相位只会是当前相位的循环后继（index+1 mod N），
// 绝不会从一个稳定相位直接跳到不相邻的另一个稳定相位
type Junction struct {
	id      entity.IntersectionID
	plan    *Plan
	cfg     config.Signal
	maxT    float64 // 稳定相位时长上限，未配置时为INF
	runtime Runtime
}

// New 创建受控路口
// 参数：plan-信控方案，cfg-信控阈值（按部署统一）
func New(plan *Plan, cfg config.Signal) *Junction {
	maxT := cfg.MaxGreen
	if maxT <= 0 {
		maxT = mathutil.INF
	}
	return &Junction{
		id:   plan.ID(),
		plan: plan,
		cfg:  cfg,
		maxT: maxT,
	}
}

// ID 路口ID
func (j *Junction) ID() entity.IntersectionID {
	return j.id
}

// Plan 信控方案
func (j *Junction) Plan() *Plan {
	return j.plan
}

// Runtime 当前运行时状态
func (j *Junction) Runtime() Runtime {
	return j.runtime
}

// Reset 重置运行时状态到首相位
// 说明：会话进入Running时调用，相位与开始时间归零
func (j *Junction) Reset() {
	j.runtime = Runtime{}
}

// Apply 推进到指定相位并重置相位开始时间
func (j *Junction) Apply(index int, now float64) {
	j.runtime.Index = index
	j.runtime.StartTime = now
}

// AdviseRoutine 常规模式下的相位推进决策
// 功能：根据当前相位类别、已持续时间与需求快照决定保持或前进一步
// 参数：demand-本步需求快照读取函数，now-当前时间
// 返回：目标相位下标与是否推进
// 算法说明：
// 1. 过渡相位走完固定时长后必定前进一步（不可延长）
// 2. 稳定相位未到最短绿灯时间则保持（防抖下限）
// 3. 稳定相位达到最长绿灯时间则强制前进（对竞争movement的有界等待保证）
// 4. 否则比较需求：竞争稳定相位中需求最大者（按负需求入堆取堆顶）
//    超过当前相位需求的ratio+margin检验时提前切换
func (j *Junction) AdviseRoutine(demand DemandReader, now float64) (int, bool) {
	elapsed := now - j.runtime.StartTime
	p := j.plan.Phase(j.runtime.Index)
	if !p.Stable {
		if elapsed >= j.cfg.TransitionTime {
			return j.plan.NextIndex(j.runtime.Index), true
		}
		return 0, false
	}
	if elapsed < j.cfg.MinGreen {
		return 0, false
	}
	if elapsed >= j.maxT {
		return j.plan.NextIndex(j.runtime.Index), true
	}
	competing := j.plan.CompetingStable(j.runtime.Index)
	if len(competing) == 0 {
		return 0, false
	}
	served := totalDemand(demand, p.Served)
	q := container.NewPriorityQueue[int]()
	for _, i := range competing {
		q.Push(i, -totalDemand(demand, j.plan.Phase(i).Served))
	}
	q.Heapify()
	_, neg := q.HeapPop()
	if -neg > served*j.cfg.SwitchRatio+j.cfg.SwitchMargin {
		return j.plan.NextIndex(j.runtime.Index), true
	}
	return 0, false
}

// AdvisePreempt 抢占模式下的相位推进决策
// 功能：在不违反安全不变式的前提下把路口引向required指定的稳定相位
// 参数：required-应急车辆所需的稳定相位下标，now-当前时间
// 返回：目标相位下标与是否推进
// 算法说明：
// 1. 已在目标相位：保持（抢占期间不受最长绿灯限制）
// 2. 当前为稳定相位且不等于目标：立即进入紧邻过渡相位（无视最短绿灯），
//    绝不直接命令冲突的稳定相位
// 3. 当前为过渡相位：必须走完过渡时长完成清空，之后前进一步——
//    后继恰为目标时直达，否则先进入中间稳定相位、下一步继续引导
func (j *Junction) AdvisePreempt(required int, now float64) (int, bool) {
	cur := j.runtime.Index
	if cur == required {
		return 0, false
	}
	if j.plan.IsStable(cur) {
		return j.plan.NextIndex(cur), true
	}
	if now-j.runtime.StartTime < j.cfg.TransitionTime {
		return 0, false
	}
	return j.plan.NextIndex(cur), true
}

func totalDemand(demand DemandReader, served []entity.MovementID) float64 {
	sum := 0
	for _, m := range served {
		sum += demand(m)
	}
	return float64(sum)
}
