package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/robowaves/pkg/systems"
)

// 时间倍速范围
const (
	MinTimeScale = 0.25
	MaxTimeScale = 8.0
)

// SimulationSettings 波次演示设置
// 全局设置，不绑定关卡进度
type SimulationSettings struct {
	// Seed 随机种子，0 表示每次启动使用时间种子
	Seed int64 `yaml:"seed"`
	// TimeScale 时间倍速
	TimeScale float64 `yaml:"timeScale"`
	// StartLevel 启动时进入的关卡
	StartLevel string `yaml:"startLevel"`
	// AutoSpawn 是否自动开始波次并按节奏生成
	AutoSpawn bool `yaml:"autoSpawn"`
	// Verbose 调度器详细日志
	Verbose bool `yaml:"verbose"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *SimulationSettings {
	return &SimulationSettings{
		Seed:       0,
		TimeScale:  1.0,
		StartLevel: systems.DefaultLevelKey,
		AutoSpawn:  true,
		Verbose:    false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager      // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *SimulationSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "simulation"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，缺失字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TimeScale = clampTimeScale(loaded.TimeScale)
	if loaded.StartLevel == "" {
		loaded.StartLevel = systems.DefaultLevelKey
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *SimulationSettings {
	return sm.settings
}

// SetSeed 设置随机种子
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSeed(seed int64) {
	sm.settings.Seed = seed
}

// SetTimeScale 设置时间倍速，限制在 [MinTimeScale, MaxTimeScale]
func (sm *SettingsManager) SetTimeScale(scale float64) {
	sm.settings.TimeScale = clampTimeScale(scale)
}

// SetStartLevel 设置启动关卡，空字符串恢复默认关卡
func (sm *SettingsManager) SetStartLevel(levelKey string) {
	if levelKey == "" {
		levelKey = systems.DefaultLevelKey
	}
	sm.settings.StartLevel = levelKey
}

// SetAutoSpawn 设置自动生成开关
func (sm *SettingsManager) SetAutoSpawn(enabled bool) {
	sm.settings.AutoSpawn = enabled
}

// SetVerbose 设置详细日志开关
func (sm *SettingsManager) SetVerbose(enabled bool) {
	sm.settings.Verbose = enabled
}

// clampTimeScale 将倍速限制在有效范围内，0 视为 1
func clampTimeScale(scale float64) float64 {
	if scale == 0 {
		return 1.0
	}
	if scale < MinTimeScale {
		return MinTimeScale
	}
	if scale > MaxTimeScale {
		return MaxTimeScale
	}
	return scale
}
