package vehicle

import (
	"github.com/google/uuid"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/randengine"
)

// IInjector 应急车辆注入接口
// 说明：路线与车辆的创建委托给外部协作方（模拟器侧），
// 注入失败（路线不可行等）返回error
type IInjector interface {
	Inject(id entity.VehicleID) error
}

// RandomDispatcher 随机应急车辆投放策略
// 功能：每步做一次伯努利试验，命中时注入一辆应急车辆
// 说明：注入失败时静默放弃本步投放（下一步重新试验）
type RandomDispatcher struct {
	p         float64
	generator *randengine.Engine
	injector  IInjector
}

// NewRandomDispatcher 创建随机投放策略
// 参数：cfg-投放配置（概率与种子），injector-注入接口
func NewRandomDispatcher(cfg config.Dispatch, injector IInjector) *RandomDispatcher {
	return &RandomDispatcher{
		p:         cfg.Probability,
		generator: randengine.New(cfg.Seed),
		injector:  injector,
	}
}

// MaybeDispatch 本步的投放试验
// 返回：新投放车辆的ID与是否投放成功
func (d *RandomDispatcher) MaybeDispatch(now float64) (entity.VehicleID, bool) {
	if d.injector == nil || !d.generator.PTrue(d.p) {
		return "", false
	}
	id := entity.VehicleID("ev-" + uuid.NewString()[:8])
	if err := d.injector.Inject(id); err != nil {
		log.Debugf("dispatch %s skipped: %v", id, err)
		return "", false
	}
	log.Infof("dispatched emergency vehicle %s at t=%.1f", id, now)
	return id, true
}
