package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/robowaves/pkg/app"
	"github.com/decker502/robowaves/pkg/embedded"
)

var (
	levelsPath = flag.String("levels", "", "关卡配置文件路径（为空时使用内嵌配置，指定时支持热重载）")
	level      = flag.String("level", "", "起始关卡（覆盖保存的设置）")
	seed       = flag.Int64("seed", 0, "随机种子（覆盖保存的设置，0 表示不覆盖）")
	speed      = flag.Float64("speed", 0, "时间倍速（覆盖保存的设置，0 表示不覆盖）")
	manual     = flag.Bool("manual", false, "手动模式：按 N 开始下一波")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	waveApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Level:      *level,
		LevelsPath: *levelsPath,
		Seed:       *seed,
		TimeScale:  *speed,
		Manual:     *manual,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，错误直接输出到 stderr
		fmt.Fprintf(os.Stderr, "演示程序初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer waveApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("机器人波次调度演示")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(waveApp); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
