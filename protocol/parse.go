package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"go-splendor/engine"
	"go-splendor/entities"
	"go-splendor/session"
)

// ParseError 无法解析的指令行
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func parseErr(line, format string, args ...any) error {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Parse 解析一行指令。索引从 0 开始，等级为 1..3
func Parse(line string) (session.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return session.Command{}, parseErr(line, "Empty command.")
	}
	verb, args := strings.ToUpper(fields[0]), fields[1:]
	switch verb {
	case "JOIN":
		if len(args) != 2 {
			return session.Command{}, parseErr(line, "Usage: JOIN <room> <name>")
		}
		return session.Command{Type: session.CmdJoin, RoomID: args[0], Name: args[1]}, nil
	case "ACTION":
		a, err := parseAction(line, args)
		if err != nil {
			return session.Command{}, err
		}
		return session.Command{Type: session.CmdAction, Action: a}, nil
	case "DISCARD":
		if len(args) == 0 {
			return session.Command{}, parseErr(line, "Usage: DISCARD <color:n,...>")
		}
		amounts, err := parseAmounts(line, strings.Join(args, ""))
		if err != nil {
			return session.Command{}, err
		}
		return session.Command{Type: session.CmdDiscard, Discard: engine.Discard(amounts)}, nil
	case "NOBLE":
		if len(args) != 1 {
			return session.Command{}, parseErr(line, "Usage: NOBLE <index|-1>")
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil || idx < session.DeclineNoble {
			return session.Command{}, parseErr(line, "Invalid noble index %q.", args[0])
		}
		return session.Command{Type: session.CmdNoble, NobleIndex: idx}, nil
	case "STATE":
		return session.Command{Type: session.CmdState}, nil
	case "QUIT":
		return session.Command{Type: session.CmdQuit}, nil
	}
	return session.Command{}, parseErr(line, "Unknown command %q.", fields[0])
}

func parseAction(line string, args []string) (engine.Action, error) {
	if len(args) == 0 {
		return nil, parseErr(line, "Usage: ACTION TAKE|BUY|RESERVE ...")
	}
	kind, rest := strings.ToUpper(args[0]), args[1:]
	switch kind {
	case "TAKE":
		if len(rest) == 0 {
			return nil, parseErr(line, "Usage: ACTION TAKE <color[:n],...>")
		}
		amounts, err := parseAmounts(line, strings.Join(rest, ""))
		if err != nil {
			return nil, err
		}
		return engine.Take(amounts), nil
	case "BUY":
		src, nums, err := parseSource(line, rest)
		if err != nil {
			return nil, err
		}
		switch {
		case src == "MARKET" && len(nums) == 2:
			return engine.BuyFromMarket(nums[0], nums[1]), nil
		case src == "RESERVED" && len(nums) == 1:
			return engine.BuyFromReserved(nums[0]), nil
		}
		return nil, parseErr(line, "Usage: ACTION BUY MARKET <tier> <index> | ACTION BUY RESERVED <index>")
	case "RESERVE":
		src, nums, err := parseSource(line, rest)
		if err != nil {
			return nil, err
		}
		switch {
		case src == "MARKET" && len(nums) == 2:
			return engine.ReserveFromMarket(nums[0], nums[1]), nil
		case src == "TOP" && len(nums) == 1:
			return engine.ReserveFromTop(nums[0]), nil
		}
		return nil, parseErr(line, "Usage: ACTION RESERVE MARKET <tier> <index> | ACTION RESERVE TOP <tier>")
	}
	return nil, parseErr(line, "Unknown action %q.", args[0])
}

func parseSource(line string, args []string) (string, []int, error) {
	if len(args) == 0 {
		return "", nil, parseErr(line, "Missing card source.")
	}
	nums := make([]int, 0, len(args)-1)
	for _, s := range args[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return "", nil, parseErr(line, "Invalid number %q.", s)
		}
		nums = append(nums, n)
	}
	return strings.ToUpper(args[0]), nums, nil
}

// parseAmounts 解析 "WHITE,BLUE:2"，省略数量时为 1，重复颜色报错
func parseAmounts(line, list string) (map[entities.GemType]int, error) {
	out := make(map[entities.GemType]int)
	for _, part := range strings.Split(list, ",") {
		if part == "" {
			return nil, parseErr(line, "Empty color in list.")
		}
		name, count, hasCount := strings.Cut(part, ":")
		g, err := entities.ParseGem(name)
		if err != nil {
			return nil, parseErr(line, "Unknown color %q.", name)
		}
		n := 1
		if hasCount {
			n, err = strconv.Atoi(count)
			if err != nil {
				return nil, parseErr(line, "Invalid amount %q for %s.", count, g.Upper())
			}
		}
		if _, dup := out[g]; dup {
			return nil, parseErr(line, "Color %s listed more than once.", g.Upper())
		}
		out[g] = n
	}
	return out, nil
}
