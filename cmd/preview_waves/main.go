package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/systems"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

var (
	levelsPath = flag.String("levels", "data/levels.yaml", "关卡配置文件路径")
	levelKey   = flag.String("level", "", "只预览指定关卡（为空时预览全部）")
	seed       = flag.Int64("seed", 1, "随机种子（0 表示使用时间种子）")
	verbose    = flag.Bool("verbose", false, "显示每波完整的生成序列")
)

func main() {
	flag.Parse()

	library, err := config.LoadLevelLibrary(*levelsPath)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	keys := library.Keys()
	if *levelKey != "" {
		if _, ok := library.GetLevelConfig(*levelKey); !ok {
			fmt.Fprintf(os.Stderr, "Level %s not found (available: %v)\n", *levelKey, keys)
			os.Exit(1)
		}
		keys = []string{*levelKey}
	}

	rng := utils.NewPRNG(*seed)
	engine := systems.NewDifficultyEngine(systems.DefaultBaseSpawnInterval)
	bosses := systems.NewBossQueue(library.Bosses())

	fmt.Printf("=== 波次预览 (seed %d) ===\n", rng.Seed())

	violations := 0
	for _, key := range keys {
		level, _ := library.GetLevelConfig(key)

		fmt.Printf("\n--- %s (%d 波", key, level.WaveCount())
		if boss, ok := bosses.BossFor(key); ok {
			fmt.Printf(", Boss %s", boss)
		}
		if level.NextLevelKey != "" {
			fmt.Printf(", 下一关 %s", level.NextLevelKey)
		}
		fmt.Println(") ---")

		preview := systems.PreviewAllWaves(level, rng)
		for waveNumber := 1; waveNumber <= level.WaveCount(); waveNumber++ {
			wave, _ := level.Wave(waveNumber)
			spawnList := preview[waveNumber]

			cost := engine.TotalCost(spawnList, wave.SpawnConfigs)
			mark := "✅"
			if !engine.IsWithinBudget(spawnList, wave) {
				mark = "❌"
				violations++
			}

			fmt.Printf("%s 第 %d 波: %2d 个敌人, 消耗 %d/%d, 间隔 %.2fs | %s\n",
				mark, waveNumber, len(spawnList), cost, wave.Weight,
				engine.SpawnInterval(waveNumber), formatCounts(systems.CountByType(spawnList)))

			if *verbose {
				fmt.Printf("      %v\n", spawnList)
			}
		}
	}

	fmt.Printf("\n=== 预览完成 ===\n")
	if violations > 0 {
		fmt.Printf("❌ %d 个波次既超出预算又不等于最少数量\n", violations)
		os.Exit(1)
	}
}

// formatCounts 按类型名排序输出 "type×n"
func formatCounts(counts map[types.EnemyType]int) string {
	enemyTypes := make([]types.EnemyType, 0, len(counts))
	for t := range counts {
		enemyTypes = append(enemyTypes, t)
	}
	sort.Slice(enemyTypes, func(i, j int) bool { return enemyTypes[i] < enemyTypes[j] })

	out := ""
	for i, t := range enemyTypes {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s×%d", t, counts[t])
	}
	return out
}
