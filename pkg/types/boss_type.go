package types

import "fmt"

// BossType 关卡终局 Boss 类型
type BossType string

const (
	BossScrapTitan BossType = "SCRAP_TITAN" // 废铁泰坦（levelTwo）
	BossSamuraiBot BossType = "SAMURAI_BOT" // 武士机器人（levelFour）
	BossGunBot     BossType = "GUN_BOT"     // 炮台机器人（levelFive）
)

// String 返回 Boss 类型的配置字符串
func (b BossType) String() string {
	return string(b)
}

// IsKnown 检查是否为已注册的 Boss 类型
func (b BossType) IsKnown() bool {
	switch b {
	case BossScrapTitan, BossSamuraiBot, BossGunBot:
		return true
	}
	return false
}

// ParseBossType 将配置字符串解析为 BossType
func ParseBossType(s string) (BossType, error) {
	b := BossType(s)
	if !b.IsKnown() {
		return "", fmt.Errorf("unknown boss type %q", s)
	}
	return b, nil
}
