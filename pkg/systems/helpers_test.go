package systems

import (
	"fmt"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/types"
)

// sequenceRandom 确定性随机源
// Float64 循环返回 floats（为空时返回 0），Shuffle 保持原顺序
type sequenceRandom struct {
	floats   []float64
	next     int
	shuffles int
}

func (r *sequenceRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.next%len(r.floats)]
	r.next++
	return v
}

func (r *sequenceRandom) Intn(n int) int { return 0 }

func (r *sequenceRandom) Shuffle(n int, swap func(i, j int)) {
	r.shuffles++
}

// mapProvider 基于 map 的关卡配置提供者
type mapProvider map[string]*config.LevelDefinition

func (p mapProvider) GetLevelConfig(levelKey string) (*config.LevelDefinition, bool) {
	def, ok := p[levelKey]
	return def, ok
}

type spawnedRobot struct {
	Col, Row int
	Type     types.EnemyType
}

type spawnedBoss struct {
	Row  int
	Type types.BossType
}

// recordingSpawner 记录所有生成调用
type recordingSpawner struct {
	robots []spawnedRobot
	bosses []spawnedBoss
}

func (s *recordingSpawner) SpawnRobot(col, row int, enemyType types.EnemyType) {
	s.robots = append(s.robots, spawnedRobot{Col: col, Row: row, Type: enemyType})
}

func (s *recordingSpawner) SpawnBoss(row int, bossType types.BossType) {
	s.bosses = append(s.bosses, spawnedBoss{Row: row, Type: bossType})
}

// recordingListener 按顺序记录事件，例如 "changed:1"
type recordingListener struct {
	events []string
}

func (l *recordingListener) OnPreparationPhaseStarted(waveNumber int) {
	l.events = append(l.events, fmt.Sprintf("prep:%d", waveNumber))
}

func (l *recordingListener) OnWaveChanged(waveNumber int) {
	l.events = append(l.events, fmt.Sprintf("changed:%d", waveNumber))
}

func (l *recordingListener) OnWaveStarted(waveNumber int) {
	l.events = append(l.events, fmt.Sprintf("started:%d", waveNumber))
}

func (l *recordingListener) count(event string) int {
	n := 0
	for _, e := range l.events {
		if e == event {
			n++
		}
	}
	return n
}

// standardWave 只有 standard 类型的波次
func standardWave(weight, minEnemyCount int) config.WaveDefinition {
	return config.WaveDefinition{
		Weight:        weight,
		MinEnemyCount: minEnemyCount,
		SpawnConfigs: map[types.EnemyType]config.SpawnConfig{
			types.EnemyStandard: {Cost: 2, Chance: 1.0},
		},
	}
}
