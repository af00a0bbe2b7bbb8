package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/scenes"
	"github.com/decker502/robowaves/pkg/systems"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

const (
	tickInterval = 50 * time.Millisecond
	cellWidth    = 3
	hudTop       = 0
	gridTop      = 4
)

var (
	levelsPath = flag.String("levels", "data/levels.yaml", "关卡配置文件路径")
	levelKey   = flag.String("level", systems.DefaultLevelKey, "起始关卡")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用时间种子）")
	speed      = flag.Float64("speed", 1.0, "时间倍速")
	logPath    = flag.String("log", "", "日志文件路径（为空时丢弃日志，终端被界面占用）")
)

// robotGlyphs 机器人类型在终端中的字符
var robotGlyphs = map[types.EnemyType]rune{
	types.EnemyStandard:   's',
	types.EnemyFast:       'f',
	types.EnemyTanky:      't',
	types.EnemyBungee:     'u',
	types.EnemyTeleport:   'p',
	types.EnemyGunner:     'g',
	types.EnemyBomber:     'b',
	types.EnemyGiant:      'G',
	types.EnemyMini:       'm',
	types.EnemyJumper:     'j',
	types.EnemyBalloonBot: 'o',
}

var robotStyles = map[types.EnemyType]tcell.Style{
	types.EnemyFast:     tcell.StyleDefault.Foreground(tcell.ColorAqua),
	types.EnemyTanky:    tcell.StyleDefault.Foreground(tcell.ColorOlive),
	types.EnemyGiant:    tcell.StyleDefault.Foreground(tcell.ColorMaroon).Bold(true),
	types.EnemyGunner:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	types.EnemyBomber:   tcell.StyleDefault.Foreground(tcell.ColorOrange),
	types.EnemyTeleport: tcell.StyleDefault.Foreground(tcell.ColorPurple),
}

var (
	styleText   = tcell.StyleDefault
	styleGrid   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSpawn  = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleBoss   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Reverse(true)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDebug  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// TerminalViewer 终端波次演示
type TerminalViewer struct {
	screen  tcell.Screen
	library *config.LevelLibrary
	rng     *utils.PRNG
	scene   *scenes.BattleScene
	speed   float64
	paused  bool
}

// NewTerminalViewer 初始化终端并加载起始关卡
func NewTerminalViewer(library *config.LevelLibrary, startLevel string, rng *utils.PRNG, speed float64) (*TerminalViewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	tv := &TerminalViewer{
		screen:  screen,
		library: library,
		rng:     rng,
		speed:   speed,
	}
	if err := tv.loadLevel(startLevel); err != nil {
		screen.Fini()
		return nil, err
	}
	return tv, nil
}

func (tv *TerminalViewer) loadLevel(levelKey string) error {
	scene, err := scenes.NewBattleScene(scenes.BattleSceneConfig{
		LevelKey:  levelKey,
		Provider:  tv.library,
		Bosses:    systems.NewBossQueue(tv.library.Bosses()),
		Random:    tv.rng,
		AutoStart: true,
		AutoChain: true,
	})
	if err != nil {
		return fmt.Errorf("failed to load level %s: %w", levelKey, err)
	}
	tv.scene = scene
	return nil
}

func (tv *TerminalViewer) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- tv.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !tv.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			deltaTime := now.Sub(last).Seconds() * tv.speed
			last = now
			if tv.paused {
				deltaTime = 0
			}

			tv.scene.Update(deltaTime)
			if next, ok := tv.scene.NextLevel(); ok {
				if err := tv.loadLevel(next); err != nil {
					log.Printf("[WaveTTY] %v", err)
				}
			}
			tv.draw()
		}
	}
}

func (tv *TerminalViewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		tv.screen.Sync()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false
		case 'n':
			tv.scene.StartNextWave()
		case 's':
			tv.scene.SkipPreparation()
		case 'r':
			tv.scene.Restart()
		case 'd':
			tv.scene.SpawnDebugRobot(-1, types.EnemyStandard)
		case ' ':
			tv.paused = !tv.paused
		case '+':
			tv.speed *= 2
		case '-':
			tv.speed /= 2
		}
	}
	return true
}

func (tv *TerminalViewer) draw() {
	tv.screen.Clear()
	snap := tv.scene.Snapshot()

	status := fmt.Sprintf("Level %s  Wave %d/%d  %s", snap.LevelKey, snap.State.WaveNumber, snap.WaveCount, snap.State.Phase)
	if snap.PreparationRemaining > 0 {
		status += fmt.Sprintf("  prep %.1fs", snap.PreparationRemaining)
	}
	if tv.paused {
		status += "  [PAUSED]"
	}
	tv.drawString(0, hudTop, status, styleText)
	tv.drawString(0, hudTop+1, fmt.Sprintf("Spawned %d/%d  Disposed %d  Remaining %d  Speed %.2fx",
		snap.State.EnemiesSpawned, snap.SpawnListLength, snap.State.EnemiesDisposed, snap.EnemiesRemaining, tv.speed), styleText)
	if snap.Banner != "" {
		tv.drawString(0, hudTop+2, snap.Banner, styleBanner)
	}

	tv.drawGrid(snap)

	logTop := gridTop + snap.Rows + 1
	for i, event := range snap.Log {
		tv.drawString(0, logTop+i, event, styleText)
	}

	footer := "[n] next wave  [s] skip prep  [d] debug robot  [r] restart  [space] pause  [+/-] speed  [q] quit"
	if snap.LevelComplete {
		footer = "LEVEL COMPLETE  " + footer
	}
	_, height := tv.screen.Size()
	tv.drawString(0, height-1, footer, styleBanner)

	tv.screen.Show()
}

func (tv *TerminalViewer) drawGrid(snap scenes.BattleSnapshot) {
	for row := 0; row < snap.Rows; row++ {
		y := gridTop + row
		tv.drawString(0, y, fmt.Sprintf("%d", row), styleText)
		for col := 0; col < snap.Cols; col++ {
			style := styleGrid
			if col == snap.Cols-1 {
				style = styleSpawn
			}
			tv.drawString(2+col*cellWidth, y, " . ", style)
		}
	}

	// 同一格子只显示数量和最后一个机器人的类型
	counts := make(map[[2]int]int)
	for _, robot := range snap.Robots {
		key := [2]int{robot.Row, robot.Col}
		counts[key]++

		glyph, ok := robotGlyphs[robot.Type]
		if !ok {
			glyph = '?'
		}
		style, ok := robotStyles[robot.Type]
		if !ok {
			style = styleText
		}
		if robot.Wave == 0 {
			style = styleDebug
		}

		x := 2 + robot.Col*cellWidth
		tv.screen.SetContent(x+1, gridTop+robot.Row, glyph, nil, style)
		if counts[key] > 1 {
			tv.screen.SetContent(x+2, gridTop+robot.Row, countRune(counts[key]), nil, style)
		}
	}

	if snap.Boss != nil {
		x := 2 + (snap.Cols-2)*cellWidth
		tv.drawString(x, gridTop+snap.Boss.Row, " BOSS ", styleBoss)
		tv.drawString(2+snap.Cols*cellWidth+1, gridTop+snap.Boss.Row,
			fmt.Sprintf("%s %.0fs", snap.Boss.Type, snap.Boss.Remaining), styleBoss)
	}
}

func (tv *TerminalViewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		tv.screen.SetContent(x+i, y, r, nil, style)
	}
}

func countRune(n int) rune {
	if n > 9 {
		return '+'
	}
	return rune('0' + n)
}

func (tv *TerminalViewer) cleanup() {
	tv.screen.Fini()
}

func main() {
	flag.Parse()

	if *logPath == "" {
		log.SetOutput(io.Discard)
	} else {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	library, err := config.LoadLevelLibrary(*levelsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load levels: %v\n", err)
		os.Exit(1)
	}

	rng := utils.NewPRNG(*seed)
	log.Printf("[WaveTTY] Random seed: %d", rng.Seed())

	viewer, err := NewTerminalViewer(library, *levelKey, rng, *speed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()

	viewer.run()
}
