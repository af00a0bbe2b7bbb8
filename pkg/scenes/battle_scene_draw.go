package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/robowaves/pkg/entities"
	"github.com/decker502/robowaves/pkg/types"
)

// 布局常量（像素）
const (
	gridOriginX = 40
	gridOriginY = 80
	cellSize    = 64
	hudLineGap  = 16
)

var (
	hudFace = text.NewGoXFace(basicfont.Face7x13)

	colorBackground = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	colorLaneEven   = color.RGBA{R: 40, G: 56, B: 44, A: 255}
	colorLaneOdd    = color.RGBA{R: 46, G: 64, B: 50, A: 255}
	colorGridLine   = color.RGBA{R: 70, G: 90, B: 74, A: 255}
	colorSpawnCol   = color.RGBA{R: 90, G: 40, B: 40, A: 255}
	colorBoss       = color.RGBA{R: 200, G: 40, B: 200, A: 255}
	colorDebugRobot = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	colorBanner     = color.RGBA{R: 255, G: 220, B: 90, A: 255}
	colorText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorLifeBar    = color.RGBA{R: 80, G: 220, B: 120, A: 255}
)

// robotColors 机器人类型的显示颜色
var robotColors = map[types.EnemyType]color.RGBA{
	types.EnemyStandard:   {R: 180, G: 180, B: 200, A: 255},
	types.EnemyFast:       {R: 90, G: 200, B: 250, A: 255},
	types.EnemyTanky:      {R: 120, G: 120, B: 90, A: 255},
	types.EnemyBungee:     {R: 250, G: 150, B: 60, A: 255},
	types.EnemyTeleport:   {R: 160, G: 90, B: 250, A: 255},
	types.EnemyGunner:     {R: 220, G: 70, B: 70, A: 255},
	types.EnemyBomber:     {R: 250, G: 90, B: 30, A: 255},
	types.EnemyGiant:      {R: 100, G: 70, B: 50, A: 255},
	types.EnemyMini:       {R: 240, G: 240, B: 120, A: 255},
	types.EnemyJumper:     {R: 80, G: 220, B: 160, A: 255},
	types.EnemyBalloonBot: {R: 250, G: 120, B: 200, A: 255},
}

// Draw 绘制网格、机器人、Boss 和 HUD
func (s *BattleScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := s.Snapshot()

	drawGrid(screen, snap.Rows, snap.Cols)
	drawRobots(screen, snap)
	drawHUD(screen, snap)
}

func cellRect(row, col int) (x, y float32) {
	return float32(gridOriginX + col*cellSize), float32(gridOriginY + row*cellSize)
}

func drawGrid(screen *ebiten.Image, rows, cols int) {
	for row := 0; row < rows; row++ {
		lane := colorLaneEven
		if row%2 == 1 {
			lane = colorLaneOdd
		}
		x, y := cellRect(row, 0)
		vector.DrawFilledRect(screen, x, y, float32(cols*cellSize), cellSize, lane, false)

		// 生成列
		sx, sy := cellRect(row, cols-1)
		vector.DrawFilledRect(screen, sx, sy, cellSize, cellSize, colorSpawnCol, false)
	}

	for row := 0; row <= rows; row++ {
		_, y := cellRect(row, 0)
		vector.StrokeLine(screen, gridOriginX, y, float32(gridOriginX+cols*cellSize), y, 1, colorGridLine, false)
	}
	for col := 0; col <= cols; col++ {
		x, _ := cellRect(0, col)
		vector.StrokeLine(screen, x, gridOriginY, x, float32(gridOriginY+rows*cellSize), 1, colorGridLine, false)
	}
}

func drawRobots(screen *ebiten.Image, snap BattleSnapshot) {
	// 同一格子里的机器人水平错开
	stacked := make(map[[2]int]int)

	for _, robot := range snap.Robots {
		key := [2]int{robot.Row, robot.Col}
		offset := float32(stacked[key] * 6)
		stacked[key]++

		clr, ok := robotColors[robot.Type]
		if !ok || robot.Wave == 0 {
			clr = colorDebugRobot
		}

		x, y := cellRect(robot.Row, robot.Col)
		x += 12 - offset
		y += 12
		vector.DrawFilledRect(screen, x, y, 40, 40, clr, false)
		vector.StrokeRect(screen, x, y, 40, 40, 1, colorGridLine, false)

		life := float32(robot.Remaining / entities.RobotLifetime(robot.Type))
		vector.DrawFilledRect(screen, x, y+42, 40*life, 3, colorLifeBar, false)
	}

	if snap.Boss != nil {
		x, y := cellRect(snap.Boss.Row, snap.Cols-1)
		vector.DrawFilledRect(screen, x-cellSize, y-8, 2*cellSize, cellSize+16, colorBoss, true)
		vector.StrokeRect(screen, x-cellSize, y-8, 2*cellSize, cellSize+16, 2, colorBanner, true)
		ebitenutil.DebugPrintAt(screen, string(snap.Boss.Type), int(x)-cellSize+4, int(y))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1fs", snap.Boss.Remaining), int(x)-cellSize+4, int(y)+16)
	}
}

func drawHUD(screen *ebiten.Image, snap BattleSnapshot) {
	lines := []string{
		fmt.Sprintf("Level %s  Wave %d/%d  Phase %s", snap.LevelKey, snap.State.WaveNumber, snap.WaveCount, snap.State.Phase),
		fmt.Sprintf("Spawned %d/%d  Disposed %d  Remaining %d", snap.State.EnemiesSpawned, snap.SpawnListLength, snap.State.EnemiesDisposed, snap.EnemiesRemaining),
	}
	if snap.PreparationRemaining > 0 {
		lines = append(lines, fmt.Sprintf("Preparation: %.1fs", snap.PreparationRemaining))
	}
	for i, line := range lines {
		drawText(screen, line, 10, 10+i*hudLineGap, colorText, 1)
	}

	if snap.Banner != "" {
		x := gridOriginX + snap.Cols*cellSize/2 - len(snap.Banner)*7/2
		drawText(screen, snap.Banner, x, gridOriginY-20, colorBanner, snap.BannerAlpha)
	}

	logY := gridOriginY + snap.Rows*cellSize + 10
	for i, event := range snap.Log {
		drawText(screen, event, 10, logY+i*hudLineGap, colorText, 1)
	}

	footer := fmt.Sprintf("Total spawned %d  disposed %d  bosses %d", snap.TotalSpawned, snap.TotalDisposed, snap.BossesDefeated)
	if snap.LevelComplete {
		footer += "  LEVEL COMPLETE"
		if snap.NextLevelKey != "" {
			footer += " -> " + snap.NextLevelKey
		}
	}
	drawText(screen, footer, 10, logY+maxEventLog*hudLineGap+4, colorBanner, 1)

	ebitenutil.DebugPrintAt(screen, "[N] next wave  [S] skip prep  [D] debug robot  [R] restart", 10, screen.Bounds().Dy()-18)
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, s, hudFace, op)
}
