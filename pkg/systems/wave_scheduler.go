package systems

import (
	"errors"
	"log"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

const (
	// DefaultLevelKey 调度器构造时和 ResetToInitialState 后选中的关卡
	DefaultLevelKey = "levelOne"

	// PreparationPhaseDuration 准备阶段时长（秒）
	PreparationPhaseDuration = 5.0

	// SpawnColumn 普通机器人的生成列（最右侧）
	SpawnColumn = 9

	// BossRow Boss 的生成行（中间车道）
	BossRow = 2
)

// ErrEmptyLevelKey SetCurrentLevel 传入空关卡键
var ErrEmptyLevelKey = errors.New("level key cannot be empty")

// WavePhase 波次阶段
type WavePhase int

const (
	// PhaseIdle 尚未开始任何波次
	PhaseIdle WavePhase = iota
	// PhasePreparation 准备阶段，倒计时结束后进入 PhaseActive
	PhasePreparation
	// PhaseActive 生成阶段
	PhaseActive
	// PhaseComplete 关卡完成
	PhaseComplete
)

// String 返回阶段名称
func (p WavePhase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhasePreparation:
		return "PREPARATION"
	case PhaseActive:
		return "ACTIVE"
	case PhaseComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// SchedulerState 调度器状态快照
type SchedulerState struct {
	LevelKey           string
	WaveNumber         int
	Phase              WavePhase
	PreparationElapsed float64
	EnemiesSpawned     int
	EnemiesDisposed    int
	LevelComplete      bool
}

// WaveScheduler 波次调度器
//
// 职责：
//   - 持有当前关卡和波次状态
//   - 管理准备阶段计时（累计 5 秒后开始生成）
//   - 按预算解析每波的敌人序列，并通过 EnemySpawner 逐个生成
//   - 在关卡最后一波派发 Boss
//   - 触发 WaveEventListener 事件
//
// 单线程使用：所有方法都应在同一个游戏循环中调用，内部不加锁。
// 当前阶段不允许的操作静默忽略。
type WaveScheduler struct {
	provider LevelConfigProvider
	spawner  EnemySpawner
	bosses   *BossQueue
	listener WaveEventListener

	resolver *SpawnBudgetResolver
	lanes    *LaneAllocator

	levelKey string
	level    *config.LevelDefinition

	waveNumber         int
	phase              WavePhase
	preparationElapsed float64
	enemiesSpawned     int
	enemiesDisposed    int
	levelComplete      bool

	// spawnList 本波解析出的生成序列，spawnCursor 指向下一个
	spawnList   []types.EnemyType
	spawnCursor int

	// pendingBoss 已排队但尚未派发的 Boss
	pendingBoss types.BossType
	bossAlive   bool

	// verbose 是否输出详细日志
	verbose bool
}

// NewWaveScheduler 创建波次调度器
//
// 参数：
//   - provider: 关卡配置提供者，为 nil 时所有关卡都是空关卡
//   - spawner: 敌人生成回调
//   - bosses: 关卡 Boss 映射，为 nil 时使用关卡定义中的 bossType
//   - rng: 随机源（预算抽取和车道洗牌共用），为 nil 时使用时间种子
//
// 返回：
//   - *WaveScheduler: 已选中 DefaultLevelKey 的调度器
func NewWaveScheduler(provider LevelConfigProvider, spawner EnemySpawner, bosses *BossQueue, rng utils.RandomSource) *WaveScheduler {
	if rng == nil {
		rng = utils.NewPRNG(0)
	}

	s := &WaveScheduler{
		provider: provider,
		spawner:  spawner,
		bosses:   bosses,
		listener: NopWaveEventListener{},
		resolver: NewSpawnBudgetResolver(rng),
		lanes:    NewLaneAllocator(DefaultLaneCount, rng),
	}
	s.selectLevel(DefaultLevelKey)
	return s
}

// SetEventListener 设置事件监听器，nil 表示不监听
func (s *WaveScheduler) SetEventListener(listener WaveEventListener) {
	if listener == nil {
		listener = NopWaveEventListener{}
	}
	s.listener = listener
}

// SetEnemySpawner 替换生成回调
// 在没有生成回调期间排队的 Boss 会在下一次 Update 时派发
func (s *WaveScheduler) SetEnemySpawner(spawner EnemySpawner) {
	s.spawner = spawner
}

// SetVerbose 设置是否输出详细日志
func (s *WaveScheduler) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// SetCurrentLevel 切换关卡
// 未知关卡使用空定义（无波次、无 Boss），不视为错误
func (s *WaveScheduler) SetCurrentLevel(levelKey string) error {
	if levelKey == "" {
		return ErrEmptyLevelKey
	}
	s.selectLevel(levelKey)
	return nil
}

func (s *WaveScheduler) selectLevel(levelKey string) {
	var def *config.LevelDefinition
	ok := false
	if s.provider != nil {
		def, ok = s.provider.GetLevelConfig(levelKey)
	}
	if !ok || def == nil {
		log.Printf("[WaveScheduler] WARNING: No configuration for level %s, using empty level", levelKey)
		def = config.EmptyLevelDefinition()
	}

	s.levelKey = levelKey
	s.level = def
	s.clearState()

	log.Printf("[WaveScheduler] Level %s selected (%d waves)", levelKey, def.WaveCount())
}

// InitialiseNewWave 开始下一波
//
// 从 IDLE 开始第 1 波；波次进行中调用时推进到下一波（与 EndWave 相同）。
// 关卡完成后调用无效。
func (s *WaveScheduler) InitialiseNewWave() {
	if s.levelComplete {
		s.debugf("InitialiseNewWave ignored: level %s already complete", s.levelKey)
		return
	}
	if s.phase == PhaseIdle {
		s.beginWave(1)
		return
	}
	s.advanceWave()
}

// Update 每帧调用
// 先派发排队中的 Boss；准备阶段累计时间达到 PreparationPhaseDuration 后进入生成阶段
func (s *WaveScheduler) Update(deltaTime float64) {
	s.dispatchPendingBoss()

	if s.phase != PhasePreparation {
		return
	}

	if deltaTime > 0 {
		s.preparationElapsed += deltaTime
	}
	if s.preparationElapsed < PreparationPhaseDuration {
		return
	}

	s.phase = PhaseActive
	log.Printf("[WaveScheduler] Wave %d started (%d enemies queued)", s.waveNumber, len(s.spawnList))
	s.listener.OnWaveStarted(s.waveNumber)
}

// SpawnNextEnemy 生成本波的下一个敌人
// 仅在生成阶段有效；序列已耗尽时返回 false
func (s *WaveScheduler) SpawnNextEnemy() bool {
	if s.phase != PhaseActive {
		s.debugf("SpawnNextEnemy ignored in phase %s", s.phase)
		return false
	}
	if s.spawnCursor >= len(s.spawnList) {
		return false
	}

	enemyType := s.spawnList[s.spawnCursor]
	s.spawnCursor++
	s.enemiesSpawned++

	lane := s.lanes.Next()
	if s.spawner != nil {
		s.spawner.SpawnRobot(SpawnColumn, lane, enemyType)
	}
	s.debugf("Spawned %s on lane %d (%d/%d)", enemyType, lane, s.spawnCursor, len(s.spawnList))
	return true
}

// OnEnemyDisposed 报告一个普通敌人被消灭
// 计数不会超过已生成数量
func (s *WaveScheduler) OnEnemyDisposed() {
	if s.enemiesDisposed >= s.enemiesSpawned {
		s.debugf("OnEnemyDisposed ignored: disposed %d, spawned %d", s.enemiesDisposed, s.enemiesSpawned)
		return
	}
	s.enemiesDisposed++
}

// OnBossDefeated 报告 Boss 被击败
// 最后一波时完成关卡；否则等同于 EndWave
func (s *WaveScheduler) OnBossDefeated() {
	if s.phase == PhaseIdle || s.levelComplete {
		s.debugf("OnBossDefeated ignored in phase %s", s.phase)
		return
	}

	s.bossAlive = false
	s.pendingBoss = ""

	if s.isFinalWave() {
		s.completeLevel()
		return
	}
	s.advanceWave()
}

// EndWave 结束当前波次并进入下一波的准备阶段
// 最后一波时完成关卡；Boss 仍存活时无效，需等待 OnBossDefeated
func (s *WaveScheduler) EndWave() {
	if s.phase == PhaseIdle || s.levelComplete {
		s.debugf("EndWave ignored in phase %s", s.phase)
		return
	}
	s.advanceWave()
}

// ResetLevel 清零波次和计数，保留当前关卡
func (s *WaveScheduler) ResetLevel() {
	s.clearState()
	log.Printf("[WaveScheduler] Level %s reset", s.levelKey)
}

// ResetToInitialState 清零状态并重新选中 DefaultLevelKey
func (s *WaveScheduler) ResetToInitialState() {
	s.selectLevel(DefaultLevelKey)
}

// SpawnEnemyDebug 直接生成一个机器人，不计入波次统计
// lane 超出范围时由车道分配器选择
func (s *WaveScheduler) SpawnEnemyDebug(lane int, enemyType types.EnemyType) {
	if lane < 0 || lane >= s.lanes.LaneCount() {
		lane = s.lanes.Next()
	}
	log.Printf("[WaveScheduler] DEBUG: spawning %s on lane %d", enemyType, lane)
	if s.spawner != nil {
		s.spawner.SpawnRobot(SpawnColumn, lane, enemyType)
	}
}

// DebugSetCurrentWave 跳转到第 waveNumber 波（从 1 开始）的准备阶段
func (s *WaveScheduler) DebugSetCurrentWave(waveNumber int) {
	if waveNumber < 1 || waveNumber > s.finalWave() {
		log.Printf("[WaveScheduler] DEBUG: wave %d out of range 1..%d", waveNumber, s.finalWave())
		return
	}
	log.Printf("[WaveScheduler] DEBUG: jumping to wave %d", waveNumber)
	s.levelComplete = false
	s.bossAlive = false
	s.pendingBoss = ""
	s.beginWave(waveNumber)
}

// ---------------------------------------------------------------------------
// 查询
// ---------------------------------------------------------------------------

// GetCurrentWave 当前波次（从 1 开始），未开始为 0
func (s *WaveScheduler) GetCurrentWave() int { return s.waveNumber }

// GetCurrentLevelKey 当前关卡键
func (s *WaveScheduler) GetCurrentLevelKey() string { return s.levelKey }

// GetCurrentLevelWaveCount 当前关卡配置的波次数
func (s *WaveScheduler) GetCurrentLevelWaveCount() int { return s.level.WaveCount() }

// GetNextLevelKey 当前关卡之后的关卡，为空表示最后一关
func (s *WaveScheduler) GetNextLevelKey() string { return s.level.NextLevelKey }

// IsLevelComplete 关卡是否完成
func (s *WaveScheduler) IsLevelComplete() bool { return s.levelComplete }

// IsPreparationPhaseActive 是否处于准备阶段
func (s *WaveScheduler) IsPreparationPhaseActive() bool { return s.phase == PhasePreparation }

// IsBossAlive 本关 Boss 是否已派发且未被击败
func (s *WaveScheduler) IsBossAlive() bool { return s.bossAlive }

// GetPreparationPhaseRemainingTime 准备阶段剩余时间（秒），不在准备阶段时为 0
func (s *WaveScheduler) GetPreparationPhaseRemainingTime() float64 {
	if s.phase != PhasePreparation {
		return 0
	}
	remaining := PreparationPhaseDuration - s.preparationElapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetEnemiesSpawned 本波已生成的普通敌人数量
func (s *WaveScheduler) GetEnemiesSpawned() int { return s.enemiesSpawned }

// GetEnemiesDisposed 本波已消灭的普通敌人数量
func (s *WaveScheduler) GetEnemiesDisposed() int { return s.enemiesDisposed }

// GetEnemiesRemaining 本波尚未消灭的敌人数量（包括尚未生成的）
func (s *WaveScheduler) GetEnemiesRemaining() int {
	remaining := len(s.spawnList) - s.enemiesDisposed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsWaveCleared 本波序列已全部生成且全部被消灭
// Boss 不计入，Boss 战由 OnBossDefeated 结束
func (s *WaveScheduler) IsWaveCleared() bool {
	return s.phase == PhaseActive &&
		s.spawnCursor >= len(s.spawnList) &&
		s.enemiesDisposed == s.enemiesSpawned
}

// GetLane 从车道分配器取下一条车道
func (s *WaveScheduler) GetLane() int { return s.lanes.Next() }

// GetWaveWeight 当前波次的预算，无配置时为 0
func (s *WaveScheduler) GetWaveWeight() int {
	if wave, ok := s.currentWave(); ok {
		return wave.Weight
	}
	return 0
}

// GetMinZombiesSpawn 当前波次的最少生成数量，无配置时为 0
func (s *WaveScheduler) GetMinZombiesSpawn() int {
	if wave, ok := s.currentWave(); ok {
		return wave.MinEnemyCount
	}
	return 0
}

// GetEnemyConfigs 当前波次生成参数的副本，无配置时为空映射
func (s *WaveScheduler) GetEnemyConfigs() map[types.EnemyType]config.SpawnConfig {
	configs := make(map[types.EnemyType]config.SpawnConfig)
	if wave, ok := s.currentWave(); ok {
		for t, cfg := range wave.SpawnConfigs {
			configs[t] = cfg
		}
	}
	return configs
}

// GetSpawnList 本波解析出的完整生成序列（副本）
func (s *WaveScheduler) GetSpawnList() []types.EnemyType {
	list := make([]types.EnemyType, len(s.spawnList))
	copy(list, s.spawnList)
	return list
}

// Phase 当前阶段
func (s *WaveScheduler) Phase() WavePhase { return s.phase }

// State 返回状态快照
func (s *WaveScheduler) State() SchedulerState {
	return SchedulerState{
		LevelKey:           s.levelKey,
		WaveNumber:         s.waveNumber,
		Phase:              s.phase,
		PreparationElapsed: s.preparationElapsed,
		EnemiesSpawned:     s.enemiesSpawned,
		EnemiesDisposed:    s.enemiesDisposed,
		LevelComplete:      s.levelComplete,
	}
}

// ---------------------------------------------------------------------------
// 内部状态转换
// ---------------------------------------------------------------------------

// clearState 回到 IDLE，丢弃所有进行中的波次状态
func (s *WaveScheduler) clearState() {
	s.waveNumber = 0
	s.phase = PhaseIdle
	s.preparationElapsed = 0
	s.enemiesSpawned = 0
	s.enemiesDisposed = 0
	s.levelComplete = false
	s.spawnList = nil
	s.spawnCursor = 0
	s.pendingBoss = ""
	s.bossAlive = false
	s.lanes.Reset()
}

// advanceWave 进入下一波；已是最后一波时完成关卡（Boss 存活时等待）
func (s *WaveScheduler) advanceWave() {
	if !s.isFinalWave() {
		s.beginWave(s.waveNumber + 1)
		return
	}
	if s.bossAlive || s.pendingBoss != "" {
		s.debugf("Final wave %d waiting for boss", s.waveNumber)
		return
	}
	s.completeLevel()
}

// beginWave 进入第 waveNumber 波的准备阶段
func (s *WaveScheduler) beginWave(waveNumber int) {
	s.waveNumber = waveNumber
	s.phase = PhasePreparation
	s.preparationElapsed = 0
	s.enemiesSpawned = 0
	s.enemiesDisposed = 0
	s.spawnCursor = 0

	if wave, ok := s.currentWave(); ok {
		s.spawnList = s.resolver.Resolve(wave.Weight, wave.MinEnemyCount, wave.SpawnConfigs)
	} else {
		s.spawnList = []types.EnemyType{}
	}

	log.Printf("[WaveScheduler] Wave %d/%d of %s preparing (%d enemies resolved)",
		waveNumber, s.level.WaveCount(), s.levelKey, len(s.spawnList))

	s.listener.OnWaveChanged(waveNumber)
	s.listener.OnPreparationPhaseStarted(waveNumber)

	if boss, ok := s.levelBoss(); ok && s.isFinalWave() {
		s.pendingBoss = boss
		s.dispatchPendingBoss()
	}
}

// dispatchPendingBoss 派发排队中的 Boss（每关至多一次）
func (s *WaveScheduler) dispatchPendingBoss() {
	if s.pendingBoss == "" || s.spawner == nil {
		return
	}
	boss := s.pendingBoss
	s.pendingBoss = ""
	s.bossAlive = true

	log.Printf("[WaveScheduler] Boss %s dispatched on row %d", boss, BossRow)
	s.spawner.SpawnBoss(BossRow, boss)
}

func (s *WaveScheduler) completeLevel() {
	s.phase = PhaseComplete
	s.levelComplete = true
	s.spawnCursor = len(s.spawnList)
	log.Printf("[WaveScheduler] Level %s complete after wave %d", s.levelKey, s.waveNumber)
}

// levelBoss 当前关卡的 Boss
// 优先使用 BossQueue，未提供时使用关卡定义
func (s *WaveScheduler) levelBoss() (types.BossType, bool) {
	if s.bosses != nil {
		return s.bosses.BossFor(s.levelKey)
	}
	if s.level.HasBoss() {
		return s.level.BossType, true
	}
	return "", false
}

// finalWave 关卡的最后一波；空关卡只有一个空波次
func (s *WaveScheduler) finalWave() int {
	if n := s.level.WaveCount(); n > 0 {
		return n
	}
	return 1
}

func (s *WaveScheduler) isFinalWave() bool {
	return s.waveNumber >= s.finalWave()
}

func (s *WaveScheduler) currentWave() (*config.WaveDefinition, bool) {
	return s.level.Wave(s.waveNumber)
}

func (s *WaveScheduler) debugf(format string, args ...interface{}) {
	if s.verbose {
		log.Printf("[WaveScheduler] "+format, args...)
	}
}
