package systems

import (
	"github.com/decker502/robowaves/pkg/components"
	"github.com/decker502/robowaves/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 实体过期时标记删除，并通过回调通知一次
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	onExpired     func(id ecs.EntityID)
}

// NewLifetimeSystem 创建一个新的生命周期系统
// onExpired 可为 nil
func NewLifetimeSystem(em *ecs.EntityManager, onExpired func(id ecs.EntityID)) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		onExpired:     onExpired,
	}
}

// Update 更新所有拥有生命周期组件的实体
// 返回: 本次更新中过期的实体数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime < lifetime.MaxLifetime {
			continue
		}

		lifetime.IsExpired = true
		s.entityManager.DestroyEntity(id)
		expired++

		if s.onExpired != nil {
			s.onExpired(id)
		}
	}

	return expired
}
