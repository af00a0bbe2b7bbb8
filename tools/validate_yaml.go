package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decker502/robowaves/pkg/config"
)

func main() {
	path := "data/levels.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 先做一次宽松解析，确认 YAML 语法本身没有问题
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确\n")

	levels, err := config.ParseLevelsFile(data)
	if err != nil {
		fmt.Printf("❌ 关卡配置无效: %v\n", err)
		os.Exit(1)
	}

	keys := make([]string, 0, len(levels.Levels))
	for key := range levels.Levels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Printf("✅ 关卡数量: %d\n", len(keys))

	problems := 0
	for _, key := range keys {
		level := levels.Levels[key]

		boss := "无"
		if level.HasBoss() {
			boss = string(level.BossType)
		}
		fmt.Printf("   %s: %d 波, Boss %s, 下一关 %q\n", key, level.WaveCount(), boss, level.NextLevelKey)

		if level.NextLevelKey != "" {
			if _, ok := levels.Levels[level.NextLevelKey]; !ok {
				fmt.Printf("❌ %s 的下一关 %s 不存在\n", key, level.NextLevelKey)
				problems++
			}
		}

		if level.WaveCount() == 0 {
			fmt.Printf("⚠️  %s 没有波次，开始后立即完成\n", key)
		}

		for i, wave := range level.Waves {
			if len(wave.SpawnConfigs) == 0 && wave.MinEnemyCount > 0 {
				fmt.Printf("❌ %s 第 %d 波要求至少 %d 个敌人，但没有 spawnConfigs\n", key, i+1, wave.MinEnemyCount)
				problems++
			}
			if !hasDrawable(wave) {
				fmt.Printf("⚠️  %s 第 %d 波预算 %d 不足以抽取任何敌人，只会生成保底数量\n", key, i+1, wave.Weight)
			}
		}
	}

	if problems == 0 {
		fmt.Printf("✅ 所有关卡配置有效\n")
	} else {
		fmt.Printf("❌ 发现 %d 个问题\n", problems)
		os.Exit(1)
	}
}

// hasDrawable 预算内是否至少有一种可抽取的敌人
func hasDrawable(wave config.WaveDefinition) bool {
	for enemyType, spawn := range wave.SpawnConfigs {
		if enemyType.IsKnown() && spawn.Cost <= wave.Weight && spawn.Chance > 0 {
			return true
		}
	}
	return len(wave.SpawnConfigs) == 0
}
