package junction

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
)

// Manager 路口管理器
// 功能：从外部引擎加载全部受控路口的信控方案并持有路口对象
type Manager struct {
	data      map[entity.IntersectionID]*Junction
	junctions []*Junction
}

// NewManager 创建路口管理器实例
func NewManager() *Manager {
	return &Manager{
		data:      make(map[entity.IntersectionID]*Junction),
		junctions: make([]*Junction, 0),
	}
}

// Init 初始化所有受控路口
// 功能：读取外部引擎的受控路口列表与相位定义，逐一校验并构建路口对象
// 说明：任何加载/校验失败都是配置错误，整体初始化失败（会话不启动）
func (m *Manager) Init(port entity.ITrafficPort, cfg config.Signal) error {
	ids := port.ControlledIntersections()
	junctions := make([]*Junction, 0, len(ids))
	for _, id := range ids {
		defs, err := port.PhaseDefinitions(id)
		if err != nil {
			return fmt.Errorf("junction %s: load phase definitions: %w", id, err)
		}
		plan, err := NewPlan(id, defs)
		if err != nil {
			return err
		}
		junctions = append(junctions, New(plan, cfg))
	}
	m.junctions = junctions
	m.data = lo.SliceToMap(junctions, func(j *Junction) (entity.IntersectionID, *Junction) {
		return j.id, j
	})
	log.Infof("loaded %d controlled junctions", len(m.junctions))
	return nil
}

// GetOrError 根据ID获取路口实例
func (m *Manager) GetOrError(id entity.IntersectionID) (*Junction, error) {
	if j, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %s in junction data", id)
	} else {
		return j, nil
	}
}

// Junctions 按加载顺序返回全部路口
func (m *Manager) Junctions() []*Junction {
	return m.junctions
}

// Reset 重置所有路口的运行时状态
func (m *Manager) Reset() {
	for _, j := range m.junctions {
		j.Reset()
	}
}
