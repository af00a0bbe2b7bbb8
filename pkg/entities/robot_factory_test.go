package entities

import (
	"testing"

	"github.com/decker502/robowaves/pkg/components"
	"github.com/decker502/robowaves/pkg/ecs"
	"github.com/decker502/robowaves/pkg/types"
)

func TestNewRobotEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewRobotEntity(em, types.EnemyFast, 3, 9, 2)
	if err != nil {
		t.Fatalf("NewRobotEntity failed: %v", err)
	}

	robot, ok := ecs.GetComponent[*components.RobotComponent](em, id)
	if !ok {
		t.Fatal("Expected RobotComponent")
	}
	if robot.Type != types.EnemyFast || robot.Row != 3 || robot.Col != 9 || robot.WaveNumber != 2 {
		t.Errorf("Unexpected robot component: %+v", robot)
	}

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok {
		t.Fatal("Expected LifetimeComponent")
	}
	if lifetime.MaxLifetime != RobotLifetime(types.EnemyFast) {
		t.Errorf("Expected lifetime %.1f, got %.1f", RobotLifetime(types.EnemyFast), lifetime.MaxLifetime)
	}
}

func TestNewRobotEntityErrors(t *testing.T) {
	em := ecs.NewEntityManager()

	tests := []struct {
		name      string
		em        *ecs.EntityManager
		enemyType types.EnemyType
		row       int
	}{
		{"nil 实体管理器", nil, types.EnemyStandard, 0},
		{"空类型", em, "", 0},
		{"负车道", em, types.EnemyStandard, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRobotEntity(tt.em, tt.enemyType, tt.row, 9, 1); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if em.EntityCount() != 0 {
		t.Errorf("Expected no entities after failed creation, got %d", em.EntityCount())
	}
}

func TestNewBossEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	id, err := NewBossEntity(em, types.BossScrapTitan, 2, "levelTwo")
	if err != nil {
		t.Fatalf("NewBossEntity failed: %v", err)
	}

	boss, ok := ecs.GetComponent[*components.BossComponent](em, id)
	if !ok {
		t.Fatal("Expected BossComponent")
	}
	if boss.Type != types.BossScrapTitan || boss.Row != 2 || boss.LevelKey != "levelTwo" {
		t.Errorf("Unexpected boss component: %+v", boss)
	}
	if ecs.HasComponent[*components.RobotComponent](em, id) {
		t.Error("Boss should not carry a RobotComponent")
	}

	if _, err := NewBossEntity(em, "", 2, "levelTwo"); err == nil {
		t.Error("Expected error for empty boss type")
	}
}

func TestLifetimeTables(t *testing.T) {
	if RobotLifetime("unregistered") != DefaultRobotLifetime {
		t.Error("Expected default robot lifetime for unknown type")
	}
	if BossLifetime("unregistered") != DefaultBossLifetime {
		t.Error("Expected default boss lifetime for unknown type")
	}
	if RobotLifetime(types.EnemyTanky) <= RobotLifetime(types.EnemyFast) {
		t.Error("Expected tanky robots to outlive fast robots")
	}
}
