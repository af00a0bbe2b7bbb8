package scenes

import (
	"testing"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/systems"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

const testLevelsYAML = `
levels:
  testOne:
    nextLevelKey: testTwo
    waves:
      - weight: 4
        minEnemyCount: 2
        spawnConfigs:
          mini: {cost: 2, chance: 1}
      - weight: 2
        minEnemyCount: 1
        spawnConfigs:
          mini: {cost: 2, chance: 1}
  testTwo:
    bossType: SCRAP_TITAN
    waves:
      - weight: 2
        minEnemyCount: 1
        spawnConfigs:
          mini: {cost: 2, chance: 1}
`

func newTestLibrary(t *testing.T) *config.LevelLibrary {
	t.Helper()
	file, err := config.ParseLevelsFile([]byte(testLevelsYAML))
	if err != nil {
		t.Fatalf("Failed to parse test levels: %v", err)
	}
	return config.NewLevelLibrary(file)
}

func newTestScene(t *testing.T, levelKey string, autoStart bool) *BattleScene {
	t.Helper()
	scene, err := NewBattleScene(BattleSceneConfig{
		LevelKey:  levelKey,
		Provider:  newTestLibrary(t),
		Random:    utils.NewPRNG(1),
		AutoStart: autoStart,
		AutoChain: true,
	})
	if err != nil {
		t.Fatalf("NewBattleScene failed: %v", err)
	}
	return scene
}

// runFor 以固定步长推进场景，直到 done 返回 true 或超时
func runFor(scene *BattleScene, seconds, step float64, done func() bool) bool {
	for elapsed := 0.0; elapsed < seconds; elapsed += step {
		scene.Update(step)
		if done != nil && done() {
			return true
		}
	}
	return done == nil
}

func TestNewBattleScene_EmptyLevelKey(t *testing.T) {
	_, err := NewBattleScene(BattleSceneConfig{Provider: newTestLibrary(t)})
	if err == nil {
		t.Error("Expected error for empty level key, got nil")
	}
}

func TestNewBattleScene_UnknownLevelUsesDefaultGrid(t *testing.T) {
	scene := newTestScene(t, "missing", false)
	snap := scene.Snapshot()

	if snap.Rows != config.DefaultLevelRows || snap.Cols != config.DefaultLevelCols {
		t.Errorf("Expected %dx%d grid, got %dx%d", config.DefaultLevelRows, config.DefaultLevelCols, snap.Rows, snap.Cols)
	}
	if snap.WaveCount != 0 {
		t.Errorf("Expected 0 waves, got %d", snap.WaveCount)
	}
}

func TestBattleScene_AutoPlayCompletesLevel(t *testing.T) {
	scene := newTestScene(t, "testOne", true)

	scene.Update(0)
	if !scene.Scheduler().IsPreparationPhaseActive() {
		t.Fatalf("Expected preparation phase after first update, got %s", scene.Scheduler().Phase())
	}
	if scene.Scheduler().GetCurrentWave() != 1 {
		t.Errorf("Expected wave 1, got %d", scene.Scheduler().GetCurrentWave())
	}

	completed := runFor(scene, 60, 0.1, scene.Scheduler().IsLevelComplete)
	if !completed {
		t.Fatalf("Expected level to complete within 60s, state %+v", scene.Scheduler().State())
	}

	snap := scene.Snapshot()
	if snap.TotalSpawned != 3 {
		t.Errorf("Expected 3 robots spawned across both waves, got %d", snap.TotalSpawned)
	}
	if snap.TotalDisposed != 3 {
		t.Errorf("Expected 3 robots disposed, got %d", snap.TotalDisposed)
	}
	if len(snap.Robots) != 0 {
		t.Errorf("Expected no robots left, got %d", len(snap.Robots))
	}
	if snap.State.Phase != systems.PhaseComplete {
		t.Errorf("Expected phase COMPLETE, got %s", snap.State.Phase)
	}
}

func TestBattleScene_NextLevelAfterDelay(t *testing.T) {
	scene := newTestScene(t, "testOne", true)
	runFor(scene, 60, 0.1, scene.Scheduler().IsLevelComplete)

	if _, ok := scene.NextLevel(); ok {
		t.Error("Expected NextLevel to wait for the chain delay")
	}

	scene.Update(LevelChainDelay)
	next, ok := scene.NextLevel()
	if !ok {
		t.Fatal("Expected NextLevel to report the next level")
	}
	if next != "testTwo" {
		t.Errorf("Expected next level testTwo, got %s", next)
	}
}

func TestBattleScene_NextLevelDisabled(t *testing.T) {
	scene, err := NewBattleScene(BattleSceneConfig{
		LevelKey:  "testOne",
		Provider:  newTestLibrary(t),
		Random:    utils.NewPRNG(1),
		AutoStart: true,
	})
	if err != nil {
		t.Fatalf("NewBattleScene failed: %v", err)
	}

	runFor(scene, 60, 0.1, scene.Scheduler().IsLevelComplete)
	scene.Update(LevelChainDelay)

	if _, ok := scene.NextLevel(); ok {
		t.Error("Expected NextLevel to stay false without AutoChain")
	}
}

func TestBattleScene_BossLevel(t *testing.T) {
	scene := newTestScene(t, "testTwo", true)

	scene.Update(0)
	snap := scene.Snapshot()
	if snap.Boss == nil {
		t.Fatal("Expected boss to be spawned on the final wave")
	}
	if snap.Boss.Type != types.BossScrapTitan {
		t.Errorf("Expected boss %s, got %s", types.BossScrapTitan, snap.Boss.Type)
	}
	if snap.Boss.Row != systems.BossRow {
		t.Errorf("Expected boss on row %d, got %d", systems.BossRow, snap.Boss.Row)
	}
	if !scene.Scheduler().IsBossAlive() {
		t.Error("Expected boss to be alive")
	}

	// 普通机器人清空后关卡仍等待 Boss
	runFor(scene, 10, 0.1, nil)
	if scene.Scheduler().IsLevelComplete() {
		t.Fatal("Expected level to wait for the boss")
	}

	completed := runFor(scene, 30, 0.1, scene.Scheduler().IsLevelComplete)
	if !completed {
		t.Fatal("Expected level to complete after the boss expires")
	}

	snap = scene.Snapshot()
	if snap.BossesDefeated != 1 {
		t.Errorf("Expected 1 boss defeated, got %d", snap.BossesDefeated)
	}
	if snap.Boss != nil {
		t.Error("Expected boss to be removed")
	}
	if snap.NextLevelKey != "" {
		t.Errorf("Expected no next level, got %s", snap.NextLevelKey)
	}
	if _, ok := scene.NextLevel(); ok {
		t.Error("Expected NextLevel to be false on the last level")
	}
}

func TestBattleScene_ManualControl(t *testing.T) {
	scene := newTestScene(t, "testOne", false)

	scene.Update(1)
	if scene.Scheduler().Phase() != systems.PhaseIdle {
		t.Fatalf("Expected IDLE without AutoStart, got %s", scene.Scheduler().Phase())
	}

	scene.StartNextWave()
	if !scene.Scheduler().IsPreparationPhaseActive() {
		t.Fatal("Expected preparation phase after StartNextWave")
	}

	scene.SkipPreparation()
	if scene.Scheduler().Phase() != systems.PhaseActive {
		t.Fatalf("Expected ACTIVE after SkipPreparation, got %s", scene.Scheduler().Phase())
	}

	scene.Update(0)
	snap := scene.Snapshot()
	if len(snap.Robots) != 1 {
		t.Fatalf("Expected first robot spawned immediately, got %d", len(snap.Robots))
	}
	robot := snap.Robots[0]
	if robot.Col != systems.SpawnColumn {
		t.Errorf("Expected robot in column %d, got %d", systems.SpawnColumn, robot.Col)
	}
	if robot.Wave != 1 {
		t.Errorf("Expected robot wave 1, got %d", robot.Wave)
	}
	if robot.Type != types.EnemyMini {
		t.Errorf("Expected robot type %s, got %s", types.EnemyMini, robot.Type)
	}
}

func TestBattleScene_DebugRobotNotCounted(t *testing.T) {
	scene := newTestScene(t, "testOne", false)

	scene.SpawnDebugRobot(1, types.EnemyFast)
	snap := scene.Snapshot()
	if len(snap.Robots) != 1 {
		t.Fatalf("Expected 1 debug robot, got %d", len(snap.Robots))
	}
	if snap.Robots[0].Row != 1 {
		t.Errorf("Expected debug robot on row 1, got %d", snap.Robots[0].Row)
	}
	if snap.Robots[0].Wave != 0 {
		t.Errorf("Expected debug robot wave 0, got %d", snap.Robots[0].Wave)
	}
	if scene.Scheduler().GetEnemiesSpawned() != 0 {
		t.Errorf("Expected scheduler spawned count 0, got %d", scene.Scheduler().GetEnemiesSpawned())
	}

	scene.Update(4)
	snap = scene.Snapshot()
	if len(snap.Robots) != 0 {
		t.Errorf("Expected debug robot to expire, got %d robots", len(snap.Robots))
	}
	if snap.TotalDisposed != 1 {
		t.Errorf("Expected total disposed 1, got %d", snap.TotalDisposed)
	}
	if scene.Scheduler().GetEnemiesDisposed() != 0 {
		t.Errorf("Expected scheduler disposed count 0, got %d", scene.Scheduler().GetEnemiesDisposed())
	}
}

func TestBattleScene_Restart(t *testing.T) {
	scene := newTestScene(t, "testTwo", true)
	scene.Update(0)
	scene.Update(6)

	scene.Restart()

	snap := scene.Snapshot()
	if len(snap.Robots) != 0 || snap.Boss != nil {
		t.Errorf("Expected no entities after restart, got %d robots, boss %v", len(snap.Robots), snap.Boss)
	}
	if snap.State.WaveNumber != 0 {
		t.Errorf("Expected wave 0 after restart, got %d", snap.State.WaveNumber)
	}
	if snap.LevelKey != "testTwo" {
		t.Errorf("Expected level testTwo kept, got %s", snap.LevelKey)
	}

	// AutoStart 重新开始第一波并再次派发 Boss
	scene.Update(0)
	if scene.Snapshot().Boss == nil {
		t.Error("Expected boss to be dispatched again after restart")
	}
}

func TestBattleScene_EventLogBounded(t *testing.T) {
	scene := newTestScene(t, "testOne", false)
	for i := 0; i < maxEventLog+5; i++ {
		scene.logEvent("event")
	}
	if got := len(scene.Snapshot().Log); got != maxEventLog {
		t.Errorf("Expected %d log entries, got %d", maxEventLog, got)
	}
}
