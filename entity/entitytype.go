package entity

// 外部交通引擎采用SUMO风格的字符串ID（如路口"J1"、进近"WN"）

// IntersectionID 受控路口ID
type IntersectionID string

// MovementID 进近/转向流ID
type MovementID string

// VehicleID 车辆ID
type VehicleID string

// PhaseDefinition 外部引擎给出的单个相位定义
type PhaseDefinition struct {
	Served []MovementID // 该相位放行的movement集合
	Stable bool         // true为稳定相位（绿灯），false为过渡相位（黄灯/清空）
}

// ITrafficPort 外部交通引擎的状态读取与控制接口
// 说明：依赖倒置，引擎只通过该接口观测与下发指令，
// 车辆运动学、路网与路线生成均由外部协作方负责；
// 所有查询为同步阻塞，本步未返回前tick不会推进
type ITrafficPort interface {
	// 受控路口列表
	ControlledIntersections() []IntersectionID
	// 指定路口的有序相位定义（循环序列）
	PhaseDefinitions(id IntersectionID) ([]PhaseDefinition, error)
	// 指定路口当前相位下标
	CurrentPhase(id IntersectionID) (int, error)
	// 设置指定路口的相位，id未知或下标越界时返回控制错误
	SetPhase(id IntersectionID, index int) error
	// 指定movement的滞留/排队车辆数
	MovementDemand(m MovementID) (int, error)
	// 当前在场车辆列表
	ActiveVehicles() []VehicleID
	// 车辆将要经过的下一个受控路口与所在movement，没有则ok为false
	NextIntersection(v VehicleID) (id IntersectionID, m MovementID, ok bool)
	// 推进一步仿真时间
	AdvanceTimeOneTick()
	// 当前仿真时间（秒）
	CurrentTime() float64
}

// IDispatchStrategy 应急车辆投放策略（可插拔）
// 说明：调度循环每步调用一次，返回新投放车辆的ID；
// 随机投放与确定性测试投放都实现该接口
type IDispatchStrategy interface {
	MaybeDispatch(now float64) (VehicleID, bool)
}

// DispatchFunc 函数式投放策略适配器
type DispatchFunc func(now float64) (VehicleID, bool)

func (f DispatchFunc) MaybeDispatch(now float64) (VehicleID, bool) {
	return f(now)
}
