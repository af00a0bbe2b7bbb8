package config

import (
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/decker502/robowaves/pkg/types"
)

const libraryYAML = `
levels:
  levelOne:
    waves:
      - weight: 4
  levelTwo:
    bossType: SCRAP_TITAN
    waves:
      - weight: 6
`

func TestLevelLibrary(t *testing.T) {
	file, err := ParseLevelsFile([]byte(libraryYAML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	lib := NewLevelLibrary(file)

	if lib.Len() != 2 {
		t.Errorf("Expected 2 levels, got %d", lib.Len())
	}
	if got := lib.Keys(); !reflect.DeepEqual(got, []string{"levelOne", "levelTwo"}) {
		t.Errorf("Expected sorted keys, got %v", got)
	}

	def, ok := lib.GetLevelConfig("levelTwo")
	if !ok || def.Waves[0].Weight != 6 {
		t.Errorf("Expected levelTwo with weight 6, got %v %v", def, ok)
	}
	if _, ok := lib.GetLevelConfig("levelNine"); ok {
		t.Error("Expected unknown level to be missing")
	}

	bosses := lib.Bosses()
	if len(bosses) != 1 || bosses["levelTwo"] != types.BossScrapTitan {
		t.Errorf("Expected only levelTwo boss, got %v", bosses)
	}
}

func TestLevelLibraryReplace(t *testing.T) {
	lib := NewLevelLibrary(nil)
	if lib.Len() != 0 {
		t.Fatalf("Expected empty library, got %d", lib.Len())
	}

	file, _ := ParseLevelsFile([]byte(libraryYAML))
	lib.Replace(file)
	held, _ := lib.GetLevelConfig("levelOne")

	lib.Replace(&LevelsFile{Levels: map[string]*LevelDefinition{}})
	if _, ok := lib.GetLevelConfig("levelOne"); ok {
		t.Error("Expected levelOne to be gone after Replace")
	}
	// 已取出的定义不受替换影响
	if held.Waves[0].Weight != 4 {
		t.Errorf("Expected held definition to stay intact, got weight %d", held.Waves[0].Weight)
	}
}

func TestLoadLevelLibraryFS(t *testing.T) {
	fsys := fstest.MapFS{
		"data/levels.yaml": &fstest.MapFile{Data: []byte(libraryYAML)},
		"data/bad.yaml":    &fstest.MapFile{Data: []byte("levels:\n  a:\n    rows: -1\n")},
	}

	lib, err := LoadLevelLibraryFS(fsys, "data/levels.yaml")
	if err != nil {
		t.Fatalf("LoadLevelLibraryFS failed: %v", err)
	}
	if lib.Len() != 2 {
		t.Errorf("Expected 2 levels, got %d", lib.Len())
	}

	if _, err := LoadLevelLibraryFS(fsys, "data/bad.yaml"); err == nil {
		t.Error("Expected validation error for bad.yaml")
	}
	if _, err := LoadLevelLibraryFS(fsys, "data/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
