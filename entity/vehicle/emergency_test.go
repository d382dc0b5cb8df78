package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/vehicle"
)

func TestActiveSetRegister(t *testing.T) {
	s := vehicle.NewActiveSet()
	assert.Equal(t, 0, s.Len())

	s.Register("ev-1")
	s.Register("ev-2")
	s.Register("ev-1") // 重复登记忽略
	assert.Equal(t, 2, s.Len())
	// 登记顺序保持
	assert.Equal(t, []entity.VehicleID{"ev-1", "ev-2"}, s.Vehicles())
}

func TestActiveSetRefresh(t *testing.T) {
	s := vehicle.NewActiveSet()
	s.Register("ev-1")
	s.Register("ev-2")
	s.Register("ev-3")

	// ev-2已离场（到达或驶出）
	removed := s.Refresh([]entity.VehicleID{"ev-1", "ev-3", "car-7"})
	assert.Equal(t, []entity.VehicleID{"ev-2"}, removed)
	assert.Equal(t, []entity.VehicleID{"ev-1", "ev-3"}, s.Vehicles())

	// 没有变化时不返回剔除列表
	assert.Nil(t, s.Refresh([]entity.VehicleID{"ev-1", "ev-3"}))

	// 全部离场
	removed = s.Refresh(nil)
	assert.Len(t, removed, 2)
	assert.Equal(t, 0, s.Len())
}
