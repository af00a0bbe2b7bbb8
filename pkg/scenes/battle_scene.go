package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/robowaves/pkg/components"
	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/ecs"
	"github.com/decker502/robowaves/pkg/entities"
	"github.com/decker502/robowaves/pkg/systems"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

const (
	// LevelChainDelay 关卡完成后切换到下一关前的停留时间（秒）
	LevelChainDelay = 3.0

	// BannerDuration 横幅提示显示时间（秒）
	BannerDuration = 2.0

	// BannerFadeTime 横幅结束前的淡出时长（秒）
	BannerFadeTime = 0.5

	// maxEventLog 保留的事件日志条数
	maxEventLog = 8
)

// BattleSceneConfig 战斗场景参数
type BattleSceneConfig struct {
	LevelKey string
	Provider systems.LevelConfigProvider
	Bosses   *systems.BossQueue
	Random   utils.RandomSource

	// AutoStart 自动开始第一波，并在波次清空后自动推进
	AutoStart bool
	// AutoChain 关卡完成后通过 NextLevel 报告下一关
	AutoChain bool
	// Verbose 调度器详细日志
	Verbose bool
}

// BattleScene 波次演示场景
//
// 职责：
//   - 作为 EnemySpawner 为调度器创建机器人和 Boss 实体
//   - 作为 WaveEventListener 接收波次事件
//   - 每帧驱动调度器、生成节拍器和生命周期系统
//   - 机器人寿命结束时报告消灭，波次清空后结束波次
//
// 机器人不移动也不战斗，寿命代替战斗结果
type BattleScene struct {
	entityManager  *ecs.EntityManager
	scheduler      *systems.WaveScheduler
	lifetimeSystem *systems.LifetimeSystem
	difficulty     *systems.DifficultyEngine

	rows, cols int

	autoStart bool
	autoChain bool
	started   bool

	// spawnTimer 生成节拍计时，达到当前波次的间隔时生成下一个
	spawnTimer float64
	// debugSpawn 为 true 时 SpawnRobot 创建的机器人不属于任何波次
	debugSpawn bool

	bossEntity ecs.EntityID

	banner      string
	bannerTimer float64
	eventLog    []string

	totalSpawned   int
	totalDisposed  int
	bossesDefeated int
	completeTimer  float64
}

// NewBattleScene 创建战斗场景
//
// 参数：
//   - cfg: 场景参数，LevelKey 不能为空
//
// 返回：
//   - *BattleScene: 已选中关卡的场景
//   - error: LevelKey 为空时返回错误
func NewBattleScene(cfg BattleSceneConfig) (*BattleScene, error) {
	s := &BattleScene{
		entityManager: ecs.NewEntityManager(),
		difficulty:    systems.NewDifficultyEngine(systems.DefaultBaseSpawnInterval),
		autoStart:     cfg.AutoStart,
		autoChain:     cfg.AutoChain,
	}
	s.lifetimeSystem = systems.NewLifetimeSystem(s.entityManager, s.onEntityExpired)

	s.scheduler = systems.NewWaveScheduler(cfg.Provider, s, cfg.Bosses, cfg.Random)
	s.scheduler.SetEventListener(s)
	s.scheduler.SetVerbose(cfg.Verbose)

	if err := s.scheduler.SetCurrentLevel(cfg.LevelKey); err != nil {
		return nil, fmt.Errorf("failed to select level: %w", err)
	}

	s.rows, s.cols = config.DefaultLevelRows, config.DefaultLevelCols
	if cfg.Provider != nil {
		if def, ok := cfg.Provider.GetLevelConfig(cfg.LevelKey); ok {
			s.rows, s.cols = def.Rows, def.Cols
		}
	}

	log.Printf("[BattleScene] Created for level %s (%dx%d grid)", cfg.LevelKey, s.rows, s.cols)
	return s, nil
}

// Scheduler 返回场景使用的调度器
func (s *BattleScene) Scheduler() *systems.WaveScheduler {
	return s.scheduler
}

// EntityManager 返回场景的实体管理器
func (s *BattleScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Update 更新一帧
func (s *BattleScene) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}

	if s.autoStart && !s.started {
		s.StartNextWave()
	}

	s.scheduler.Update(deltaTime)
	s.updateSpawnPacer(deltaTime)

	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()

	if s.autoStart && s.scheduler.IsWaveCleared() && !s.scheduler.IsBossAlive() {
		s.scheduler.EndWave()
	}

	if s.bannerTimer > 0 {
		s.bannerTimer -= deltaTime
		if s.bannerTimer <= 0 {
			s.banner = ""
		}
	}
	if s.scheduler.IsLevelComplete() {
		s.completeTimer += deltaTime
	}
}

// updateSpawnPacer 生成阶段按难度引擎给出的间隔逐个生成
func (s *BattleScene) updateSpawnPacer(deltaTime float64) {
	if s.scheduler.Phase() != systems.PhaseActive {
		return
	}

	s.spawnTimer += deltaTime
	interval := s.difficulty.SpawnInterval(s.scheduler.GetCurrentWave())
	for s.spawnTimer >= interval {
		s.spawnTimer -= interval
		if !s.scheduler.SpawnNextEnemy() {
			s.spawnTimer = 0
			return
		}
	}
}

// onEntityExpired 生命周期结束回调
func (s *BattleScene) onEntityExpired(id ecs.EntityID) {
	if robot, ok := ecs.GetComponent[*components.RobotComponent](s.entityManager, id); ok {
		s.totalDisposed++
		// 调试机器人和旧波次残留不计入当前波次
		if !robot.IsDebug() && robot.WaveNumber == s.scheduler.GetCurrentWave() {
			s.scheduler.OnEnemyDisposed()
		}
		return
	}

	if boss, ok := ecs.GetComponent[*components.BossComponent](s.entityManager, id); ok {
		s.bossesDefeated++
		s.bossEntity = 0
		s.logEvent(fmt.Sprintf("Boss %s defeated", boss.Type))
		s.scheduler.OnBossDefeated()
		if s.scheduler.IsLevelComplete() {
			s.showBanner("Level complete!")
		}
	}
}

// StartNextWave 手动开始下一波
func (s *BattleScene) StartNextWave() {
	s.started = true
	s.scheduler.InitialiseNewWave()
}

// SkipPreparation 立即结束准备阶段
func (s *BattleScene) SkipPreparation() {
	if remaining := s.scheduler.GetPreparationPhaseRemainingTime(); remaining > 0 {
		s.scheduler.Update(remaining)
	}
}

// SpawnDebugRobot 在指定车道生成一个不计入波次的机器人
// lane < 0 时由车道分配器选择
func (s *BattleScene) SpawnDebugRobot(lane int, enemyType types.EnemyType) {
	s.debugSpawn = true
	s.scheduler.SpawnEnemyDebug(lane, enemyType)
	s.debugSpawn = false
}

// Restart 清空实体并重置当前关卡
func (s *BattleScene) Restart() {
	s.entityManager.Clear()
	s.scheduler.ResetLevel()
	s.started = false
	s.spawnTimer = 0
	s.bossEntity = 0
	s.completeTimer = 0
	s.banner = ""
	s.bannerTimer = 0
	s.logEvent("Level restarted")
}

// NextLevel 实现 game.LevelChainer
// 关卡完成并停留 LevelChainDelay 后返回下一关
func (s *BattleScene) NextLevel() (string, bool) {
	if !s.autoChain || !s.scheduler.IsLevelComplete() || s.completeTimer < LevelChainDelay {
		return "", false
	}
	next := s.scheduler.GetNextLevelKey()
	return next, next != ""
}

// ---------------------------------------------------------------------------
// systems.EnemySpawner
// ---------------------------------------------------------------------------

// SpawnRobot 创建机器人实体
func (s *BattleScene) SpawnRobot(col, row int, enemyType types.EnemyType) {
	waveNumber := s.scheduler.GetCurrentWave()
	if s.debugSpawn {
		waveNumber = 0
	}

	if _, err := entities.NewRobotEntity(s.entityManager, enemyType, row, col, waveNumber); err != nil {
		log.Printf("[BattleScene] Failed to spawn robot: %v", err)
		return
	}
	s.totalSpawned++
}

// SpawnBoss 创建 Boss 实体
func (s *BattleScene) SpawnBoss(row int, bossType types.BossType) {
	id, err := entities.NewBossEntity(s.entityManager, bossType, row, s.scheduler.GetCurrentLevelKey())
	if err != nil {
		log.Printf("[BattleScene] Failed to spawn boss: %v", err)
		return
	}
	s.bossEntity = id
	s.showBanner(fmt.Sprintf("%s approaches!", bossType))
	s.logEvent(fmt.Sprintf("Boss %s spawned on row %d", bossType, row))
}

// ---------------------------------------------------------------------------
// systems.WaveEventListener
// ---------------------------------------------------------------------------

// OnWaveChanged 波次切换
func (s *BattleScene) OnWaveChanged(waveNumber int) {
	s.showBanner(fmt.Sprintf("Wave %d/%d", waveNumber, s.scheduler.GetCurrentLevelWaveCount()))
	s.logEvent(fmt.Sprintf("Wave %d: %d enemies", waveNumber, len(s.scheduler.GetSpawnList())))
}

// OnPreparationPhaseStarted 准备阶段开始
func (s *BattleScene) OnPreparationPhaseStarted(waveNumber int) {
	s.spawnTimer = 0
}

// OnWaveStarted 生成阶段开始，第一个敌人在下一帧生成
func (s *BattleScene) OnWaveStarted(waveNumber int) {
	s.spawnTimer = s.difficulty.SpawnInterval(waveNumber)
	s.logEvent(fmt.Sprintf("Wave %d started", waveNumber))
}

func (s *BattleScene) showBanner(text string) {
	s.banner = text
	s.bannerTimer = BannerDuration
}

func (s *BattleScene) logEvent(event string) {
	s.eventLog = append(s.eventLog, event)
	if len(s.eventLog) > maxEventLog {
		s.eventLog = s.eventLog[len(s.eventLog)-maxEventLog:]
	}
}
