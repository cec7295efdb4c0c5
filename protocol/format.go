package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-splendor/engine"
	"go-splendor/entities"
	"go-splendor/session"
)

// Format 把一条消息转换成若干行（不含换行符）
func Format(msg session.Message) []string {
	switch msg.Type {
	case session.MsgResult:
		if msg.OK {
			return []string{"RESULT OK"}
		}
		return []string{"RESULT ERROR " + msg.Error}
	case session.MsgWelcome:
		return []string{fmt.Sprintf("WELCOME %s %d", msg.RoomID, msg.Seat)}
	case session.MsgWaiting:
		return []string{fmt.Sprintf("WAITING %d %d", msg.Joined, msg.MaxPlayers)}
	case session.MsgYourTurn:
		return []string{"YOUR_TURN"}
	case session.MsgDiscardNeeded:
		return []string{fmt.Sprintf("DISCARD_NEEDED %d", msg.Count)}
	case session.MsgNobleChoice:
		lines := []string{fmt.Sprintf("NOBLE_CHOICE %d", msg.Count)}
		for i, n := range msg.Nobles {
			lines = append(lines, fmt.Sprintf("NOBLE_OPTION %d %s %s", i, formatGems(n.Requirements), n.Name))
		}
		return lines
	case session.MsgState:
		if msg.State == nil {
			return []string{"STATE", "ENDSTATE"}
		}
		return FormatState(*msg.State)
	case session.MsgGameOver:
		if msg.Winner == "" {
			return []string{"GAME_OVER"}
		}
		return []string{fmt.Sprintf("GAME_OVER %s %d", msg.Winner, msg.Prestige)}
	}
	return []string{"RESULT ERROR unknown message " + string(msg.Type)}
}

// Write 写出消息的所有行
func Write(w io.Writer, msg session.Message) error {
	bw := bufio.NewWriter(w)
	for _, line := range Format(msg) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// formatGems 固定颜色顺序 "WHITE:1,BLUE:2"，跳过 0；全为 0 时为 "-"
func formatGems(m map[entities.GemType]int) string {
	var parts []string
	for _, g := range entities.AllGems {
		if n := m[g]; n != 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", g.Upper(), n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func formatCard(c entities.Card) string {
	return fmt.Sprintf("id=%d tier=%d bonus=%s prestige=%d cost=%s", c.ID, c.Tier, c.Bonus.Upper(), c.Prestige, formatGems(c.Cost))
}

// FormatState 文本快照，STATE 开头 ENDSTATE 结尾
func FormatState(s engine.Snapshot) []string {
	lines := []string{"STATE"}
	lines = append(lines, fmt.Sprintf("TURN %d PHASE %s FINAL_ROUND %t", s.CurrentPlayer, s.Phase, s.FinalRound))
	lines = append(lines, "SUPPLY "+formatGems(s.Board.Supply))
	for i, n := range s.Board.Nobles {
		lines = append(lines, fmt.Sprintf("NOBLE %d %s %s", i, formatGems(n.Requirements), n.Name))
	}
	for _, m := range s.Board.Markets {
		lines = append(lines, fmt.Sprintf("MARKET %d DECK %d", m.Tier, m.DeckSize))
		for i, c := range m.Cards {
			lines = append(lines, fmt.Sprintf("CARD %d %d %s", m.Tier, i, formatCard(c)))
		}
	}
	for _, p := range s.Players {
		lines = append(lines, fmt.Sprintf("PLAYER %d %s prestige=%d tokens=%s bonuses=%s purchased=%d nobles=%d",
			p.Seat, p.Name, p.Prestige, formatGems(p.Tokens), formatGems(p.Bonuses), len(p.Purchased), len(p.Nobles)))
		for i, c := range p.Reserved {
			lines = append(lines, fmt.Sprintf("RESERVED %d %d %s", p.Seat, i, formatCard(c)))
		}
	}
	if s.GameOver {
		lines = append(lines, fmt.Sprintf("WINNER %d", s.Winner))
	}
	return append(lines, "ENDSTATE")
}
