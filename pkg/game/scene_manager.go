package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定关卡的场景，避免循环依赖
type SceneFactory func(levelKey string) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentLevel string
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use LoadLevel or SwitchTo to set the initial scene.
func NewSceneManager(factory SceneFactory) *SceneManager {
	return &SceneManager{
		sceneFactory: factory,
	}
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentLevel 返回最近一次成功加载的关卡键
func (sm *SceneManager) CurrentLevel() string {
	return sm.currentLevel
}

// LoadLevel 加载指定关卡的场景
// 返回: 是否切换成功
func (sm *SceneManager) LoadLevel(levelKey string) bool {
	log.Printf("[SceneManager] Loading level: %s", levelKey)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] ERROR: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(levelKey)
	if newScene == nil {
		log.Printf("[SceneManager] ERROR: Failed to create scene for level: %s", levelKey)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentLevel = levelKey
	log.Printf("[SceneManager] Switched to level: %s", levelKey)
	return true
}

// Update updates the currently active scene.
// 场景实现 LevelChainer 且报告下一关时，在本帧结束后切换
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene == nil {
		return
	}
	sm.currentScene.Update(deltaTime)

	if chainer, ok := sm.currentScene.(LevelChainer); ok {
		if next, ready := chainer.NextLevel(); ready {
			sm.LoadLevel(next)
		}
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
