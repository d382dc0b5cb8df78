package vehicle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/vehicle"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
)

// fakeInjector 记录注入请求的注入器
type fakeInjector struct {
	injected []entity.VehicleID
	err      error
}

func (f *fakeInjector) Inject(id entity.VehicleID) error {
	if f.err != nil {
		return f.err
	}
	f.injected = append(f.injected, id)
	return nil
}

func TestRandomDispatcherAlways(t *testing.T) {
	inj := &fakeInjector{}
	d := vehicle.NewRandomDispatcher(config.Dispatch{Probability: 1, Seed: 1}, inj)

	id, ok := d.MaybeDispatch(0)
	assert.True(t, ok)
	assert.NotEmpty(t, id)
	assert.Equal(t, []entity.VehicleID{id}, inj.injected)

	// 每次投放的ID都不同
	id2, ok := d.MaybeDispatch(1)
	assert.True(t, ok)
	assert.NotEqual(t, id, id2)
}

func TestRandomDispatcherNever(t *testing.T) {
	inj := &fakeInjector{}
	d := vehicle.NewRandomDispatcher(config.Dispatch{Probability: 0, Seed: 1}, inj)
	for i := 0; i < 100; i++ {
		_, ok := d.MaybeDispatch(float64(i))
		assert.False(t, ok)
	}
	assert.Empty(t, inj.injected)
}

func TestRandomDispatcherInjectFailureIsSilent(t *testing.T) {
	// 路线不可行时静默放弃本步投放
	inj := &fakeInjector{err: errors.New("no feasible route")}
	d := vehicle.NewRandomDispatcher(config.Dispatch{Probability: 1, Seed: 1}, inj)
	_, ok := d.MaybeDispatch(0)
	assert.False(t, ok)
}

func TestDispatchFuncAdapter(t *testing.T) {
	var f entity.IDispatchStrategy = entity.DispatchFunc(func(now float64) (entity.VehicleID, bool) {
		return "ev-x", now == 5
	})
	_, ok := f.MaybeDispatch(4)
	assert.False(t, ok)
	id, ok := f.MaybeDispatch(5)
	assert.True(t, ok)
	assert.Equal(t, entity.VehicleID("ev-x"), id)
}
