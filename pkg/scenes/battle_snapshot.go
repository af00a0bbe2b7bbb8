package scenes

import (
	"github.com/decker502/robowaves/pkg/components"
	"github.com/decker502/robowaves/pkg/ecs"
	"github.com/decker502/robowaves/pkg/systems"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

// RobotView 机器人的只读视图
type RobotView struct {
	ID        ecs.EntityID
	Type      types.EnemyType
	Row       int
	Col       int
	Wave      int
	Remaining float64 // 剩余寿命（秒）
}

// BossView Boss 的只读视图
type BossView struct {
	ID        ecs.EntityID
	Type      types.BossType
	Row       int
	Remaining float64
}

// BattleSnapshot 场景状态快照
// 渲染器（ebiten 或终端）只读取快照，不直接访问调度器
type BattleSnapshot struct {
	LevelKey     string
	NextLevelKey string
	Rows, Cols   int

	State     systems.SchedulerState
	WaveCount int

	PreparationRemaining float64
	EnemiesRemaining     int
	SpawnListLength      int
	LevelComplete        bool

	Robots []RobotView
	Boss   *BossView

	Banner      string
	BannerAlpha float64 // 横幅透明度，结束前淡出
	Log         []string

	TotalSpawned   int
	TotalDisposed  int
	BossesDefeated int
}

// Snapshot 返回当前状态快照
// 机器人按实体 ID（创建顺序）排列
func (s *BattleScene) Snapshot() BattleSnapshot {
	snap := BattleSnapshot{
		LevelKey:             s.scheduler.GetCurrentLevelKey(),
		NextLevelKey:         s.scheduler.GetNextLevelKey(),
		Rows:                 s.rows,
		Cols:                 s.cols,
		State:                s.scheduler.State(),
		WaveCount:            s.scheduler.GetCurrentLevelWaveCount(),
		PreparationRemaining: s.scheduler.GetPreparationPhaseRemainingTime(),
		EnemiesRemaining:     s.scheduler.GetEnemiesRemaining(),
		SpawnListLength:      len(s.scheduler.GetSpawnList()),
		LevelComplete:        s.scheduler.IsLevelComplete(),
		Banner:               s.banner,
		BannerAlpha:          utils.FadeAlpha(s.bannerTimer, BannerFadeTime),
		Log:                  append([]string(nil), s.eventLog...),
		TotalSpawned:         s.totalSpawned,
		TotalDisposed:        s.totalDisposed,
		BossesDefeated:       s.bossesDefeated,
	}

	for _, id := range ecs.GetEntitiesWith2[*components.RobotComponent, *components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		robot, _ := ecs.GetComponent[*components.RobotComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		snap.Robots = append(snap.Robots, RobotView{
			ID:        id,
			Type:      robot.Type,
			Row:       robot.Row,
			Col:       robot.Col,
			Wave:      robot.WaveNumber,
			Remaining: lifetime.Remaining(),
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.BossComponent, *components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		boss, _ := ecs.GetComponent[*components.BossComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		snap.Boss = &BossView{
			ID:        id,
			Type:      boss.Type,
			Row:       boss.Row,
			Remaining: lifetime.Remaining(),
		}
		break
	}

	return snap
}
