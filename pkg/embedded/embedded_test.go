package embedded

import (
	"testing"
	"testing/fstest"
)

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/levels.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(fstest.MapFS{
		"data/levels.yaml": &fstest.MapFile{Data: []byte("levels: {}\n")},
	})
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"普通路径", "data/levels.yaml", false},
		{"带 ./ 前缀", "./data/levels.yaml", false},
		{"错误前缀", "assets/levels.yaml", true},
		{"不存在的文件", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != "levels: {}\n" {
				t.Errorf("Unexpected content: %q", data)
			}
		})
	}
}

func TestExists(t *testing.T) {
	Init(fstest.MapFS{
		"data/levels.yaml": &fstest.MapFile{Data: []byte("levels: {}\n")},
	})
	defer func() { initialized = false }()

	if !Exists("data/levels.yaml") {
		t.Error("Expected data/levels.yaml to exist")
	}
	if Exists("data/other.yaml") {
		t.Error("Expected data/other.yaml to be missing")
	}
}
