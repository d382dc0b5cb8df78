package config

// ControlStep 指定控制循环时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 控制循环配置
type Control struct {
	Step      ControlStep `yaml:"step"`
	AIEnabled bool        `yaml:"ai_enabled,omitempty"` // 启动时是否开启自适应信控
}

// Signal 信控阈值配置（按部署统一配置，不区分路口）
// 说明：决定稳定相位（绿灯）的延长/切换与过渡相位（黄灯）的时长
type Signal struct {
	MinGreen       float64 `yaml:"min_green"`       // 稳定相位最短持续时间（秒），防抖下限
	MaxGreen       float64 `yaml:"max_green"`       // 稳定相位最长持续时间（秒），<=0表示不设上限
	TransitionTime float64 `yaml:"transition_time"` // 过渡相位固定时长（秒）
	SwitchRatio    float64 `yaml:"switch_ratio"`    // 提前切换的需求比例系数k
	SwitchMargin   float64 `yaml:"switch_margin"`   // 提前切换的需求裕量c
}

// Dispatch 随机应急车辆投放配置
type Dispatch struct {
	Probability float64 `yaml:"probability,omitempty"` // 每步投放的伯努利概率
	Seed        uint64  `yaml:"seed,omitempty"`        // 随机种子
}

// Simulator 环路模拟器配置（开发/测试用的外部引擎替身）
type Simulator struct {
	Seed      uint64             `yaml:"seed,omitempty"`      // 随机种子
	Arrival   map[string]float64 `yaml:"arrival,omitempty"`   // 各movement每步到达概率
	Discharge int                `yaml:"discharge,omitempty"` // 绿灯movement每步放行车辆数
}

// Config YAML配置文件的根结构
type Config struct {
	Control   Control   `yaml:"control"`             // 控制循环
	Signal    Signal    `yaml:"signal"`              // 信控阈值
	Dispatch  Dispatch  `yaml:"dispatch,omitempty"`  // 随机应急投放
	Simulator Simulator `yaml:"simulator,omitempty"` // 环路模拟器
}
