package config

import (
	"fmt"
	"io/fs"
	"log"
	"sort"
	"sync"

	"github.com/decker502/robowaves/pkg/types"
)

// LevelLibrary 关卡配置库
// 按关卡键提供已解析的关卡定义，供波次调度器查询
//
// 热重载（LevelWatcher）会在后台 goroutine 中调用 Replace，
// 因此内部数据由读写锁保护
type LevelLibrary struct {
	mu     sync.RWMutex
	levels map[string]*LevelDefinition
}

// NewLevelLibrary 从已解析的关卡文件创建配置库
// file 为 nil 时创建空库
func NewLevelLibrary(file *LevelsFile) *LevelLibrary {
	lib := &LevelLibrary{}
	lib.Replace(file)
	return lib
}

// LoadLevelLibrary 从 YAML 文件加载配置库
func LoadLevelLibrary(path string) (*LevelLibrary, error) {
	file, err := LoadLevelsFile(path)
	if err != nil {
		return nil, err
	}
	lib := NewLevelLibrary(file)
	log.Printf("[LevelLibrary] Loaded %d levels from %s", lib.Len(), path)
	return lib, nil
}

// LoadLevelLibraryFS 从文件系统（如 embed.FS）加载配置库
func LoadLevelLibraryFS(fsys fs.FS, path string) (*LevelLibrary, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels file %s: %w", path, err)
	}

	file, err := ParseLevelsFile(data)
	if err != nil {
		return nil, fmt.Errorf("invalid levels file %s: %w", path, err)
	}

	lib := NewLevelLibrary(file)
	log.Printf("[LevelLibrary] Loaded %d levels from embedded %s", lib.Len(), path)
	return lib, nil
}

// Replace 整体替换关卡数据
// 已被调度器持有的 *LevelDefinition 不受影响（旧定义保持不变）
func (l *LevelLibrary) Replace(file *LevelsFile) {
	levels := make(map[string]*LevelDefinition)
	if file != nil {
		for key, def := range file.Levels {
			levels[key] = def
		}
	}

	l.mu.Lock()
	l.levels = levels
	l.mu.Unlock()
}

// GetLevelConfig 获取指定关卡的定义
// 未知关卡返回 (nil, false)
func (l *LevelLibrary) GetLevelConfig(levelKey string) (*LevelDefinition, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	def, ok := l.levels[levelKey]
	if !ok || def == nil {
		return nil, false
	}
	return def, true
}

// Len 返回关卡数量
func (l *LevelLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.levels)
}

// Keys 返回排序后的关卡键列表
func (l *LevelLibrary) Keys() []string {
	l.mu.RLock()
	keys := make([]string, 0, len(l.levels))
	for key := range l.levels {
		keys = append(keys, key)
	}
	l.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Bosses 返回关卡键 -> Boss 类型的映射
// 仅包含配置了 bossType 的关卡
func (l *LevelLibrary) Bosses() map[string]types.BossType {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bosses := make(map[string]types.BossType)
	for key, def := range l.levels {
		if def.HasBoss() {
			bosses[key] = def.BossType
		}
	}
	return bosses
}
