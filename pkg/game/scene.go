package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// LevelChainer 是一个可选接口，用于关卡完成后自动切换到下一关
//
// SceneManager 每帧更新后查询当前场景，返回 ok 时通过 SceneFactory 加载下一关
type LevelChainer interface {
	// NextLevel 返回应切换到的关卡键
	// ok 为 false 表示继续停留在当前场景
	NextLevel() (levelKey string, ok bool)
}
