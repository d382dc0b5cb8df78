package config

import "fmt"

// DefaultSignal 缺省信控阈值
// 说明：与简单十字路口的原始部署参数一致（最短绿灯10s、最长绿灯60s、黄灯3s）
func DefaultSignal() Signal {
	return Signal{
		MinGreen:       10,
		MaxGreen:       60,
		TransitionTime: 3,
		SwitchRatio:    1,
		SwitchMargin:   0,
	}
}

// Validate 校验信控阈值
// 功能：配置错误属于致命错误，会话初始化阶段直接失败
func (s Signal) Validate() error {
	if s.MinGreen < 0 {
		return fmt.Errorf("signal: min_green %f must be >= 0", s.MinGreen)
	}
	if s.MaxGreen > 0 && s.MaxGreen < s.MinGreen {
		return fmt.Errorf("signal: max_green %f must be >= min_green %f", s.MaxGreen, s.MinGreen)
	}
	if s.TransitionTime <= 0 {
		return fmt.Errorf("signal: transition_time %f must be > 0", s.TransitionTime)
	}
	if s.SwitchRatio <= 0 {
		return fmt.Errorf("signal: switch_ratio %f must be > 0", s.SwitchRatio)
	}
	return nil
}

// Validate 校验全部配置
func (c Config) Validate() error {
	if c.Control.Step.Interval <= 0 {
		return fmt.Errorf("control: step interval %f must be > 0", c.Control.Step.Interval)
	}
	if c.Control.Step.Total < 0 {
		return fmt.Errorf("control: step total %d must be >= 0", c.Control.Step.Total)
	}
	if p := c.Dispatch.Probability; p < 0 || p > 1 {
		return fmt.Errorf("dispatch: probability %f must be in [0, 1]", p)
	}
	return c.Signal.Validate()
}
