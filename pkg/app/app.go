// Package app 提供波次演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载关卡库和设置，
// 创建场景管理器并处理全局按键。main.go 只负责解析命令行参数。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/robowaves/pkg/config"
	"github.com/decker502/robowaves/pkg/embedded"
	"github.com/decker502/robowaves/pkg/game"
	"github.com/decker502/robowaves/pkg/scenes"
	"github.com/decker502/robowaves/pkg/systems"
	"github.com/decker502/robowaves/pkg/types"
	"github.com/decker502/robowaves/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 720
	ScreenHeight = 600
)

// EmbeddedLevelsPath 内嵌关卡配置的路径
const EmbeddedLevelsPath = "data/levels.yaml"

// ErrQuit 用户请求退出（ESC）
var ErrQuit = errors.New("quit")

// debugRobotTypes 按 D 键时轮流生成的调试机器人
var debugRobotTypes = []types.EnemyType{
	types.EnemyStandard,
	types.EnemyFast,
	types.EnemyTanky,
	types.EnemyGiant,
}

// Config 定义应用启动配置
// 零值字段表示使用保存的设置
type Config struct {
	// Verbose 启用详细日志输出（包括调度器调试日志）
	Verbose bool
	// Level 起始关卡键（如 "levelTwo"）
	Level string
	// LevelsPath 关卡配置文件路径，为空时使用内嵌配置；指定时支持热重载
	LevelsPath string
	// Seed 随机种子
	Seed int64
	// TimeScale 时间倍速
	TimeScale float64
	// Manual 手动模式，按 N 开始下一波
	Manual bool
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	watcher      *config.LevelWatcher

	timeScale                float64
	debugIndex               int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化内嵌数据。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	library, watcher, err := loadLevelLibrary(cfg.LevelsPath)
	if err != nil {
		return nil, fmt.Errorf("关卡配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d levels", library.Len())

	var storage *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "robowaves"}); err != nil {
		log.Printf("[App] Warning: persistent settings unavailable: %v", err)
	} else {
		storage = m
	}

	settingsManager := game.NewSettingsManager(storage)
	if err := settingsManager.Load(); err != nil {
		log.Printf("[App] Warning: failed to load settings: %v", err)
	}
	applyOverrides(settingsManager, cfg)
	settings := settingsManager.GetSettings()

	rng := utils.NewPRNG(settings.Seed)
	log.Printf("[App] Random seed: %d", rng.Seed())

	// Boss 队列每次加载关卡时从关卡库重建，热重载后立即生效
	sceneManager := game.NewSceneManager(func(levelKey string) game.Scene {
		scene, err := scenes.NewBattleScene(scenes.BattleSceneConfig{
			LevelKey:  levelKey,
			Provider:  library,
			Bosses:    systems.NewBossQueue(library.Bosses()),
			Random:    rng,
			AutoStart: settings.AutoSpawn,
			AutoChain: settings.AutoSpawn,
			Verbose:   settings.Verbose,
		})
		if err != nil {
			log.Printf("[App] Failed to create battle scene: %v", err)
			return nil
		}
		return scene
	})

	log.Printf("[App] Starting level: %s", settings.StartLevel)
	if !sceneManager.LoadLevel(settings.StartLevel) {
		if watcher != nil {
			watcher.Close()
		}
		return nil, fmt.Errorf("关卡 %s 加载失败", settings.StartLevel)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settingsManager,
		watcher:      watcher,
		timeScale:    settings.TimeScale,
	}, nil
}

// loadLevelLibrary 加载关卡库
// path 为空时使用内嵌配置，否则从磁盘加载并监听变更
func loadLevelLibrary(path string) (*config.LevelLibrary, *config.LevelWatcher, error) {
	if path == "" {
		fsys, err := embedded.FS()
		if err != nil {
			return nil, nil, err
		}
		library, err := config.LoadLevelLibraryFS(fsys, EmbeddedLevelsPath)
		if err != nil {
			return nil, nil, err
		}
		return library, nil, nil
	}

	library, err := config.LoadLevelLibrary(path)
	if err != nil {
		return nil, nil, err
	}

	watcher, err := config.WatchLevelFile(path, library)
	if err != nil {
		log.Printf("[App] Warning: hot reload disabled: %v", err)
		return library, nil, nil
	}
	return library, watcher, nil
}

// applyOverrides 命令行参数覆盖保存的设置
func applyOverrides(sm *game.SettingsManager, cfg Config) {
	if cfg.Level != "" {
		sm.SetStartLevel(cfg.Level)
	}
	if cfg.Seed != 0 {
		sm.SetSeed(cfg.Seed)
	}
	if cfg.TimeScale != 0 {
		sm.SetTimeScale(cfg.TimeScale)
	}
	if cfg.Manual {
		sm.SetAutoSpawn(false)
	}
	if cfg.Verbose {
		sm.SetVerbose(true)
	}
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if a.watcher != nil {
		select {
		case path := <-a.watcher.Reloaded:
			log.Printf("[App] Levels reloaded from %s, restarting level", path)
			a.sceneManager.LoadLevel(a.sceneManager.CurrentLevel())
		default:
		}
	}

	a.handleInput()

	deltaTime := a.timeScale / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		a.setTimeScale(a.timeScale * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		a.setTimeScale(a.timeScale / 2)
	}

	battle, ok := a.sceneManager.GetCurrentScene().(*scenes.BattleScene)
	if !ok {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		battle.StartNextWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		battle.SkipPreparation()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		battle.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		battle.SpawnDebugRobot(-1, debugRobotTypes[a.debugIndex%len(debugRobotTypes)])
		a.debugIndex++
	}
}

func (a *App) setTimeScale(scale float64) {
	a.settings.SetTimeScale(scale)
	a.timeScale = a.settings.GetSettings().TimeScale
	log.Printf("[App] Time scale: %.2fx", a.timeScale)
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时 letterbox 区域填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Close 保存设置并停止配置监听
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to stop watcher: %v", err)
		}
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}
