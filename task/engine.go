package task

import (
	"errors"
	"flag"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/clock"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/junction"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/vehicle"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

var (
	ErrNotRunning = errors.New("engine: session is not running")
)

// State 会话状态
type State int

const (
	Uninitialized State = iota // 未初始化
	Running                    // 运行中
	Stopped                    // 已停止
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// session 会话状态对象
// 说明：路口运行时状态表与活跃应急车辆集合都挂在会话上，
// Initialize时创建，Stop时整体丢弃，不存在进程级单例
type session struct {
	junctionManager *junction.Manager
	evs             *vehicle.ActiveSet
}

// Engine 自适应信控引擎
// 功能：会话状态机（Uninitialized→Running→Stopped）与每步的调度循环，
// 先应用应急抢占、再做常规需求控制，并把相位变更写回外部引擎
// 说明：单线程协作式推进——引擎只在被显式tick时动作，
// 同一会话不会有并发的tick；所有对外部引擎的查询是同步阻塞的
type Engine struct {
	port       entity.ITrafficPort
	cfg        config.Config
	dispatcher entity.IDispatchStrategy
	resolver   *vehicle.Resolver

	state     State
	sess      *session
	aiEnabled bool
}

// New 创建信控引擎
// 参数：port-外部引擎接口，c-配置，dispatcher-投放策略（nil禁用随机投放），
// resolver-抢占解析器（nil时使用先到先服务仲裁）
func New(port entity.ITrafficPort, c config.Config, dispatcher entity.IDispatchStrategy, resolver *vehicle.Resolver) *Engine {
	if resolver == nil {
		resolver = vehicle.NewResolver(nil)
	}
	return &Engine{
		port:       port,
		cfg:        c,
		dispatcher: dispatcher,
		resolver:   resolver,
		state:      Uninitialized,
		aiEnabled:  c.Control.AIEnabled,
	}
}

// Initialize 初始化会话并进入Running
// 功能：校验配置、从外部引擎加载全部信控方案，
// 为每个路口建立全新的运行时状态（首相位、开始时间0），清空活跃集合
// 说明：配置错误是致命的，会话不启动；重新初始化前会先撤销上一个会话
func (e *Engine) Initialize() error {
	if e.state == Running {
		e.Stop()
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	m := junction.NewManager()
	if err := m.Init(e.port, e.cfg.Signal); err != nil {
		return err
	}
	m.Reset()
	e.sess = &session{
		junctionManager: m,
		evs:             vehicle.NewActiveSet(),
	}
	e.state = Running
	log.Infof("session running, %d controlled junctions", len(m.Junctions()))
	return nil
}

// Tick 推进一步
// 功能：调度循环的单步，原子地完成本步所有路口的控制决策
// 参数：aiActive-本步是否执行自适应信控（false时只推进时间与做集合刷新）
// 算法说明：
// 1. 推进外部引擎一步仿真时间
// 2. 刷新活跃应急车辆集合（剔除已离场车辆）
// 3. 调用投放策略（可选的随机注入）
// 4. 逐路口：先做抢占解析，命中则按抢占转移策略推进；
//    否则执行常规需求控制。目标与当前相位相同的指令省略；
//    set_phase失败只记录日志并跳过该路口本步
func (e *Engine) Tick(aiActive bool) error {
	if e.state != Running {
		return ErrNotRunning
	}
	e.port.AdvanceTimeOneTick()
	now := e.port.CurrentTime()

	e.sess.evs.Refresh(e.port.ActiveVehicles())
	if e.dispatcher != nil {
		if id, ok := e.dispatcher.MaybeDispatch(now); ok {
			e.sess.evs.Register(id)
		}
	}
	if !aiActive {
		return nil
	}

	demand := junction.NewPortDemandReader(e.port)
	for _, j := range e.sess.junctionManager.Junctions() {
		var target int
		var advance bool
		if required, preempted := e.resolver.Resolve(e.port, j.ID(), j.Plan(), e.sess.evs.Vehicles()); preempted {
			target, advance = j.AdvisePreempt(required, now)
		} else {
			target, advance = j.AdviseRoutine(demand, now)
		}
		if !advance || target == j.Runtime().Index {
			continue
		}
		if err := e.port.SetPhase(j.ID(), target); err != nil {
			// 控制错误只影响该路口本步，不中断其余路口
			log.Warnf("junction %s: set phase %d failed: %v", j.ID(), target, err)
			continue
		}
		j.Apply(target, now)
		log.Debugf("junction %s: phase -> %d at t=%.1f", j.ID(), target, now)
	}
	return nil
}

// Stop 停止会话并丢弃全部运行时状态
// 说明：所有未完成的控制意图立即作废；重新Initialize会进入全新会话
func (e *Engine) Stop() {
	if e.state != Running {
		return
	}
	e.sess = nil
	e.state = Stopped
	log.Infof("session stopped")
}

// SetAIEnabled 设置自适应信控开关（驱动循环使用的缺省值）
func (e *Engine) SetAIEnabled(enabled bool) {
	e.aiEnabled = enabled
	log.Infof("adaptive control %v", map[bool]string{true: "enabled", false: "disabled"}[enabled])
}

// AIEnabled 自适应信控开关当前值
func (e *Engine) AIEnabled() bool {
	return e.aiEnabled
}

// RegisterEmergencyVehicle 登记一辆应急车辆
// 说明：车辆离场后由集合刷新自动注销
func (e *Engine) RegisterEmergencyVehicle(id entity.VehicleID) error {
	if e.state != Running {
		return ErrNotRunning
	}
	e.sess.evs.Register(id)
	return nil
}

// State 当前会话状态
func (e *Engine) State() State {
	return e.state
}

// Junction 按ID获取路口（供查询接口与测试使用）
func (e *Engine) Junction(id entity.IntersectionID) (*junction.Junction, error) {
	if e.state != Running {
		return nil, ErrNotRunning
	}
	return e.sess.junctionManager.GetOrError(id)
}

// ActiveEmergencyVehicles 当前活跃应急车辆（登记顺序）
func (e *Engine) ActiveEmergencyVehicles() []entity.VehicleID {
	if e.state != Running {
		return nil
	}
	return e.sess.evs.Vehicles()
}

// Run 运行至时钟区间结束
// 功能：初始化会话后按时钟逐步tick，结束后停止会话
// 说明：驱动循环串行推进，心跳日志按log.heartbeat_interval输出
func (e *Engine) Run(ck *clock.Clock) error {
	if err := e.Initialize(); err != nil {
		return err
	}
	for !ck.Done() {
		ck.Tick()
		if err := e.Tick(e.aiEnabled); err != nil {
			return err
		}
		if ck.InternalStep%int32(*heartBeatInterval) == 0 {
			log.Infof("STEP: %d (%s)", ck.InternalStep, ck)
		}
	}
	e.Stop()
	log.Infof("engine complete")
	return nil
}
