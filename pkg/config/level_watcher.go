package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 最后一次文件事件到重载之间的静默时间
const reloadDebounce = 100 * time.Millisecond

// LevelWatcher 关卡配置热重载器
//
// 监听关卡 YAML 所在目录，文件被写入/创建/重命名时重新解析，
// 解析成功后替换 LevelLibrary 的数据；解析失败保留旧数据并输出日志
type LevelWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	library *LevelLibrary

	// Reloaded 每次成功重载后发送文件路径（缓冲，满时丢弃）
	Reloaded chan string

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchLevelFile 开始监听关卡文件
//
// 参数：
//   - path: 关卡 YAML 文件路径
//   - library: 重载成功后要替换数据的配置库
//
// 返回：
//   - *LevelWatcher: 监听器，使用完毕后需调用 Close
//   - error: 创建监听失败时返回错误
func WatchLevelFile(path string, library *LevelLibrary) (*LevelWatcher, error) {
	if library == nil {
		return nil, fmt.Errorf("level library cannot be nil")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve levels path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// 监听目录而非文件本身：编辑器保存时常以重命名方式替换文件
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	lw := &LevelWatcher{
		watcher:  w,
		path:     absPath,
		library:  library,
		Reloaded: make(chan string, 4),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go lw.run()

	log.Printf("[LevelWatcher] Watching %s", absPath)
	return lw, nil
}

// Close 停止监听
func (lw *LevelWatcher) Close() error {
	var err error
	lw.once.Do(func() {
		close(lw.closeCh)
		err = lw.watcher.Close()
		<-lw.done
	})
	return err
}

func (lw *LevelWatcher) run() {
	defer close(lw.done)

	// 写入通常产生多个事件（截断 + 写入），最后一个事件之后静默 reloadDebounce 才重载
	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != lw.path {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			lw.reload()
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[LevelWatcher] Watch error: %v", err)
		case <-lw.closeCh:
			return
		}
	}
}

// reload 重新加载关卡文件，成功返回 true
func (lw *LevelWatcher) reload() bool {
	file, err := LoadLevelsFile(lw.path)
	if err != nil {
		log.Printf("[LevelWatcher] Reload failed, keeping previous levels: %v", err)
		return false
	}

	lw.library.Replace(file)
	log.Printf("[LevelWatcher] Reloaded %d levels from %s", lw.library.Len(), lw.path)

	select {
	case lw.Reloaded <- lw.path:
	default:
	}
	return true
}
