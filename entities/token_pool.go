package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientTokens 扣减数量超过余额
var ErrInsufficientTokens = errors.New("insufficient tokens")

// TokenPool 六种 token 的计数，任何时候都不会为负
type TokenPool struct {
	counts map[GemType]int
}

func NewTokenPool() *TokenPool {
	p := &TokenPool{counts: make(map[GemType]int, len(AllGems))}
	for _, g := range AllGems {
		p.counts[g] = 0
	}
	return p
}

// NewTokenPoolFrom 用给定数量初始化，未出现的颜色为 0
func NewTokenPoolFrom(counts map[GemType]int) (*TokenPool, error) {
	p := NewTokenPool()
	for g, n := range counts {
		if err := p.Set(g, n); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *TokenPool) Get(g GemType) int {
	return p.counts[g]
}

func (p *TokenPool) Set(g GemType, n int) error {
	if !g.Valid() {
		return fmt.Errorf("set %q: unknown gem", g)
	}
	if n < 0 {
		return fmt.Errorf("set %s to %d: count must not be negative", g, n)
	}
	p.counts[g] = n
	return nil
}

func (p *TokenPool) Add(g GemType, n int) error {
	if !g.Valid() {
		return fmt.Errorf("add %q: unknown gem", g)
	}
	if n < 0 {
		return fmt.Errorf("add %d %s: amount must not be negative", n, g)
	}
	p.counts[g] += n
	return nil
}

// Remove 扣减；余额不足时不做任何修改并返回 ErrInsufficientTokens
func (p *TokenPool) Remove(g GemType, n int) error {
	if !g.Valid() {
		return fmt.Errorf("remove %q: unknown gem", g)
	}
	if n < 0 {
		return fmt.Errorf("remove %d %s: amount must not be negative", n, g)
	}
	if p.counts[g] < n {
		return fmt.Errorf("remove %d %s from %d: %w", n, g, p.counts[g], ErrInsufficientTokens)
	}
	p.counts[g] -= n
	return nil
}

// Transfer 从 p 转移 n 个到 dst
func (p *TokenPool) Transfer(dst *TokenPool, g GemType, n int) error {
	if err := p.Remove(g, n); err != nil {
		return err
	}
	return dst.Add(g, n)
}

func (p *TokenPool) Total() int {
	total := 0
	for _, n := range p.counts {
		total += n
	}
	return total
}

// Counts 返回副本
func (p *TokenPool) Counts() map[GemType]int {
	out := make(map[GemType]int, len(p.counts))
	for g, n := range p.counts {
		out[g] = n
	}
	return out
}

func (p *TokenPool) Clone() *TokenPool {
	return &TokenPool{counts: p.Counts()}
}

func (p *TokenPool) String() string {
	parts := make([]string, 0, len(AllGems))
	for _, g := range AllGems {
		parts = append(parts, fmt.Sprintf("%s:%d", g.Upper(), p.counts[g]))
	}
	return strings.Join(parts, ",")
}
