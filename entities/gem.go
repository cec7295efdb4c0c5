package entities

import (
	"fmt"
	"strings"
)

// GemType 宝石种类：五种普通颜色 + 黄金（万能）
type GemType string

const (
	White GemType = "White"
	Blue  GemType = "Blue"
	Green GemType = "Green"
	Red   GemType = "Red"
	Black GemType = "Black"
	Gold  GemType = "Gold" // 万能 token，不会出现在卡牌费用里
)

// StandardGems 五种普通颜色，固定顺序（遍历 map 时用它保证输出稳定）
var StandardGems = []GemType{White, Blue, Green, Red, Black}

// AllGems 六种 token
var AllGems = []GemType{White, Blue, Green, Red, Black, Gold}

// IsStandard 是否为普通颜色
func (g GemType) IsStandard() bool {
	switch g {
	case White, Blue, Green, Red, Black:
		return true
	}
	return false
}

// Valid 是否为六种之一
func (g GemType) Valid() bool {
	return g == Gold || g.IsStandard()
}

// Upper 协议里使用的大写名字，例如 WHITE
func (g GemType) Upper() string {
	return strings.ToUpper(string(g))
}

// ParseGem 不区分大小写解析颜色名
func ParseGem(s string) (GemType, error) {
	s = strings.TrimSpace(s)
	for _, g := range AllGems {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown gem color %q", s)
}
