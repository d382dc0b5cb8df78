// 随机数引擎，包装了golang.org/x/exp/rand
// 用于随机应急车辆投放（伯努利试验）与环路模拟器的随机到达
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于整体调整随机数序列
)

// Engine 随机数引擎
// 功能：在固定种子下提供可复现的随机数序列
type Engine struct {
	*rand.Rand
}

// New 创建随机数引擎
// 参数：seed-随机数种子（加上全局种子偏移量后生效）
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// PTrue 以指定概率返回true（伯努利试验）
// 参数：p-返回true的概率（0.0到1.0之间）
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// DiscreteDistribution 按给定权重生成随机下标
// 参数：weight-权重数组，每个元素表示对应下标的概率权重
// 返回：随机生成的下标（0到len(weight)-1），权重全为0时返回-1
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	random := .0
	for _, w := range weight {
		random += w
	}
	if random == 0 {
		return -1
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	return int32(len(weight) - 1)
}
