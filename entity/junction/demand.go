package junction

import (
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
)

// DemandReader 需求快照读取函数
// 说明：输入movement，返回本步的滞留/排队车辆数
type DemandReader func(m entity.MovementID) int

// NewPortDemandReader 构建基于外部引擎的需求快照
// 功能：对同一movement的重复查询做本步内缓存，观测缺失按零需求处理
// 说明：零需求是保守缺省，倾向于不切换相位
func NewPortDemandReader(port entity.ITrafficPort) DemandReader {
	cache := make(map[entity.MovementID]int)
	return func(m entity.MovementID) int {
		if d, ok := cache[m]; ok {
			return d
		}
		d, err := port.MovementDemand(m)
		if err != nil {
			log.Debugf("movement %s: demand unavailable, treated as zero: %v", m, err)
			d = 0
		}
		cache[m] = d
		return d
	}
}
