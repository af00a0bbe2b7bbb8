package config

import (
	"fmt"
	"os"

	"github.com/decker502/robowaves/pkg/types"
	"gopkg.in/yaml.v3"
)

// 关卡默认值
const (
	// DefaultLevelRows 默认行数（车道数）
	DefaultLevelRows = 5
	// DefaultLevelCols 默认列数
	DefaultLevelCols = 10
	// MaxLevelRows 允许的最大行数
	MaxLevelRows = 10
)

// LevelsFile 关卡配置文件的顶层结构
// levels 以关卡键（如 "levelOne"）索引
type LevelsFile struct {
	Levels map[string]*LevelDefinition `yaml:"levels"`
}

// LevelDefinition 关卡定义
// 加载后在关卡生命周期内不可变
type LevelDefinition struct {
	Rows         int              `yaml:"rows"`         // 行数（车道数），默认 5
	Cols         int              `yaml:"cols"`         // 列数，默认 10
	BossType     types.BossType   `yaml:"bossType"`     // 可选：关卡终局 Boss，为空表示无 Boss
	NextLevelKey string           `yaml:"nextLevelKey"` // 下一关的关卡键，为空表示最后一关
	Waves        []WaveDefinition `yaml:"waves"`        // 波次列表（有序）
}

// WaveDefinition 单个波次定义
type WaveDefinition struct {
	Weight        int                             `yaml:"weight"`        // 本波生成预算
	MinEnemyCount int                             `yaml:"minEnemyCount"` // 本波最少生成数量
	ExpGained     int                             `yaml:"expGained"`     // 完成本波获得的经验（仅展示用）
	SpawnConfigs  map[types.EnemyType]SpawnConfig `yaml:"spawnConfigs"`  // 敌人类型 -> 生成参数
}

// SpawnConfig 单个敌人类型的生成参数
type SpawnConfig struct {
	Cost   int     `yaml:"cost"`   // 每生成一个消耗的预算（正整数）
	Chance float64 `yaml:"chance"` // 相对选择权重 [0,1]，不是概率
}

// HasBoss 关卡是否以 Boss 战结束
func (l *LevelDefinition) HasBoss() bool {
	return l != nil && l.BossType != ""
}

// WaveCount 返回波次数量，nil 安全
func (l *LevelDefinition) WaveCount() int {
	if l == nil {
		return 0
	}
	return len(l.Waves)
}

// Wave 返回第 waveNumber 波（从 1 开始）的定义
// 超出范围时返回 false
func (l *LevelDefinition) Wave(waveNumber int) (*WaveDefinition, bool) {
	if l == nil {
		return nil, false
	}
	idx := waveNumber - 1
	if idx < 0 || idx >= len(l.Waves) {
		return nil, false
	}
	return &l.Waves[idx], true
}

// EmptyLevelDefinition 返回惰性空关卡
// 配置缺失时使用：无波次、无 Boss
func EmptyLevelDefinition() *LevelDefinition {
	def := &LevelDefinition{}
	applyLevelDefaults(def)
	return def
}

// LoadLevelsFile 从 YAML 文件加载全部关卡配置
//
// 参数：
//
//	filepath - 关卡配置文件的路径
//
// 返回：
//
//	*LevelsFile - 解析并校验后的关卡集合
//	error - 读取、解析或校验失败时返回错误
func LoadLevelsFile(filepath string) (*LevelsFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels file %s: %w", filepath, err)
	}

	levels, err := ParseLevelsFile(data)
	if err != nil {
		return nil, fmt.Errorf("invalid levels file %s: %w", filepath, err)
	}
	return levels, nil
}

// ParseLevelsFile 从 YAML 数据解析关卡配置
// 依次执行：反序列化 -> 应用默认值 -> 校验
func ParseLevelsFile(data []byte) (*LevelsFile, error) {
	var file LevelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse levels YAML: %w", err)
	}

	if file.Levels == nil {
		file.Levels = make(map[string]*LevelDefinition)
	}

	for key, level := range file.Levels {
		if level == nil {
			level = &LevelDefinition{}
			file.Levels[key] = level
		}
		applyLevelDefaults(level)
		if err := validateLevelDefinition(key, level); err != nil {
			return nil, err
		}
	}

	return &file, nil
}

// applyLevelDefaults 为缺失的可选字段设置默认值
func applyLevelDefaults(level *LevelDefinition) {
	if level.Rows == 0 {
		level.Rows = DefaultLevelRows
	}
	if level.Cols == 0 {
		level.Cols = DefaultLevelCols
	}
	for i := range level.Waves {
		if level.Waves[i].SpawnConfigs == nil {
			level.Waves[i].SpawnConfigs = make(map[types.EnemyType]SpawnConfig)
		}
	}
}

// validateLevelDefinition 验证关卡定义的合法性
func validateLevelDefinition(key string, level *LevelDefinition) error {
	if key == "" {
		return fmt.Errorf("level key is required")
	}

	if level.Rows < 1 || level.Rows > MaxLevelRows {
		return fmt.Errorf("level %s: rows must be between 1 and %d, got %d", key, MaxLevelRows, level.Rows)
	}
	if level.Cols < 1 {
		return fmt.Errorf("level %s: cols must be positive, got %d", key, level.Cols)
	}

	if level.BossType != "" && !level.BossType.IsKnown() {
		return fmt.Errorf("level %s: unknown bossType %q", key, level.BossType)
	}

	for i, wave := range level.Waves {
		if wave.Weight < 0 {
			return fmt.Errorf("level %s, wave %d: weight cannot be negative", key, i+1)
		}
		if wave.MinEnemyCount < 0 {
			return fmt.Errorf("level %s, wave %d: minEnemyCount cannot be negative", key, i+1)
		}
		if wave.ExpGained < 0 {
			return fmt.Errorf("level %s, wave %d: expGained cannot be negative", key, i+1)
		}

		for enemyType, spawn := range wave.SpawnConfigs {
			if !enemyType.IsKnown() {
				return fmt.Errorf("level %s, wave %d: unknown enemy type %q", key, i+1, enemyType)
			}
			if spawn.Cost < 1 {
				return fmt.Errorf("level %s, wave %d, %s: cost must be at least 1, got %d", key, i+1, enemyType, spawn.Cost)
			}
			if spawn.Chance < 0 || spawn.Chance > 1 {
				return fmt.Errorf("level %s, wave %d, %s: chance must be between 0 and 1, got %.2f", key, i+1, enemyType, spawn.Chance)
			}
		}
	}

	return nil
}
