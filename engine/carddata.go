package engine

import "go-splendor/entities"

type cost = map[entities.GemType]int

const (
	white = entities.White
	blue  = entities.Blue
	green = entities.Green
	red   = entities.Red
	black = entities.Black
)

// CardTemplate 卡牌模板，ID 在开局时由 IDSequence 分配
type CardTemplate struct {
	Tier     int
	Prestige int
	Bonus    entities.GemType
	Cost     map[entities.GemType]int
}

// NobleTemplate 贵族模板
type NobleTemplate struct {
	ID           string
	Name         string
	Requirements map[entities.GemType]int
}

// StandardNobles 基础版 10 位贵族
var StandardNobles = []NobleTemplate{
	{ID: "N1", Name: "Mary Stuart", Requirements: cost{red: 4, green: 4}},
	{ID: "N2", Name: "Charles V", Requirements: cost{black: 3, red: 3, white: 3}},
	{ID: "N3", Name: "Macchiavelli", Requirements: cost{blue: 4, white: 4}},
	{ID: "N4", Name: "Isabella of Castile", Requirements: cost{black: 4, white: 4}},
	{ID: "N5", Name: "Suleiman the Magnificent", Requirements: cost{blue: 4, green: 4}},
	{ID: "N6", Name: "Catherine de Medici", Requirements: cost{green: 3, blue: 3, red: 3}},
	{ID: "N7", Name: "Anne of Brittany", Requirements: cost{green: 3, blue: 3, white: 3}},
	{ID: "N8", Name: "Henry VIII", Requirements: cost{black: 4, red: 4}},
	{ID: "N9", Name: "Elisabeth of Austria", Requirements: cost{black: 3, blue: 3, white: 3}},
	{ID: "N10", Name: "Francis I", Requirements: cost{black: 3, red: 3, green: 3}},
}

// StandardCards 基础版 90 张发展卡：一级 40 张、二级 30 张、三级 20 张
var StandardCards = []CardTemplate{
	{Tier: 1, Prestige: 1, Bonus: white, Cost: cost{green: 4}},
	{Tier: 1, Prestige: 1, Bonus: green, Cost: cost{black: 4}},
	{Tier: 1, Prestige: 1, Bonus: black, Cost: cost{blue: 4}},
	{Tier: 1, Prestige: 1, Bonus: blue, Cost: cost{red: 4}},
	{Tier: 1, Prestige: 1, Bonus: red, Cost: cost{white: 4}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{blue: 3}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{red: 3}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{green: 3}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{black: 3}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{white: 3}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{red: 2, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{white: 2, blue: 1}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{green: 2, red: 1}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{black: 2, white: 1}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{blue: 2, green: 1}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{blue: 2, black: 2}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{blue: 2, red: 2}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{white: 2, green: 2}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{green: 2, black: 2}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{white: 2, red: 2}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{blue: 1, green: 1, red: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{blue: 1, white: 1, red: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{blue: 1, green: 1, red: 1, white: 1}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{white: 1, green: 1, red: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{blue: 1, green: 1, white: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{white: 3, blue: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{blue: 3, white: 1, green: 1}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{red: 3, green: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{green: 3, red: 1, blue: 1}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{black: 3, red: 1, white: 1}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{blue: 2, green: 2, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{black: 2, red: 2, blue: 1}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{white: 2, blue: 2, red: 1}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{red: 2, green: 2, white: 1}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{white: 2, black: 2, green: 1}},
	{Tier: 1, Prestige: 0, Bonus: white, Cost: cost{green: 2, blue: 1, red: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: green, Cost: cost{black: 2, blue: 1, red: 1, white: 1}},
	{Tier: 1, Prestige: 0, Bonus: black, Cost: cost{blue: 2, white: 1, red: 1, green: 1}},
	{Tier: 1, Prestige: 0, Bonus: blue, Cost: cost{red: 2, white: 1, green: 1, black: 1}},
	{Tier: 1, Prestige: 0, Bonus: red, Cost: cost{white: 2, blue: 1, green: 1, black: 1}},

	{Tier: 2, Prestige: 3, Bonus: white, Cost: cost{white: 6}},
	{Tier: 2, Prestige: 3, Bonus: green, Cost: cost{green: 6}},
	{Tier: 2, Prestige: 3, Bonus: black, Cost: cost{black: 6}},
	{Tier: 2, Prestige: 3, Bonus: blue, Cost: cost{blue: 6}},
	{Tier: 2, Prestige: 3, Bonus: red, Cost: cost{red: 6}},
	{Tier: 2, Prestige: 2, Bonus: white, Cost: cost{red: 5}},
	{Tier: 2, Prestige: 2, Bonus: green, Cost: cost{green: 5}},
	{Tier: 2, Prestige: 2, Bonus: black, Cost: cost{white: 5}},
	{Tier: 2, Prestige: 2, Bonus: blue, Cost: cost{blue: 5}},
	{Tier: 2, Prestige: 2, Bonus: red, Cost: cost{black: 5}},
	{Tier: 2, Prestige: 2, Bonus: white, Cost: cost{red: 5, black: 3}},
	{Tier: 2, Prestige: 2, Bonus: green, Cost: cost{blue: 5, green: 3}},
	{Tier: 2, Prestige: 2, Bonus: black, Cost: cost{green: 5, red: 3}},
	{Tier: 2, Prestige: 2, Bonus: blue, Cost: cost{white: 5, blue: 3}},
	{Tier: 2, Prestige: 2, Bonus: red, Cost: cost{black: 5, white: 3}},
	{Tier: 2, Prestige: 2, Bonus: white, Cost: cost{red: 4, black: 2, green: 1}},
	{Tier: 2, Prestige: 2, Bonus: green, Cost: cost{white: 4, blue: 2, black: 1}},
	{Tier: 2, Prestige: 2, Bonus: black, Cost: cost{green: 4, red: 2, blue: 1}},
	{Tier: 2, Prestige: 2, Bonus: blue, Cost: cost{black: 4, white: 2, red: 1}},
	{Tier: 2, Prestige: 2, Bonus: red, Cost: cost{blue: 4, green: 2, white: 1}},
	{Tier: 2, Prestige: 1, Bonus: white, Cost: cost{green: 3, red: 2, black: 2}},
	{Tier: 2, Prestige: 1, Bonus: green, Cost: cost{blue: 3, white: 2, black: 2}},
	{Tier: 2, Prestige: 1, Bonus: black, Cost: cost{white: 3, blue: 2, green: 2}},
	{Tier: 2, Prestige: 1, Bonus: blue, Cost: cost{red: 3, blue: 2, green: 2}},
	{Tier: 2, Prestige: 1, Bonus: red, Cost: cost{black: 3, red: 2, white: 2}},
	{Tier: 2, Prestige: 1, Bonus: white, Cost: cost{blue: 3, red: 3, white: 2}},
	{Tier: 2, Prestige: 1, Bonus: green, Cost: cost{red: 3, white: 3, green: 2}},
	{Tier: 2, Prestige: 1, Bonus: black, Cost: cost{white: 3, green: 3, black: 2}},
	{Tier: 2, Prestige: 1, Bonus: blue, Cost: cost{green: 3, black: 3, blue: 2}},
	{Tier: 2, Prestige: 1, Bonus: red, Cost: cost{blue: 3, black: 3, red: 2}},

	{Tier: 3, Prestige: 5, Bonus: white, Cost: cost{black: 7, white: 3}},
	{Tier: 3, Prestige: 5, Bonus: green, Cost: cost{blue: 7, green: 3}},
	{Tier: 3, Prestige: 5, Bonus: black, Cost: cost{red: 7, black: 3}},
	{Tier: 3, Prestige: 5, Bonus: blue, Cost: cost{white: 7, blue: 3}},
	{Tier: 3, Prestige: 5, Bonus: red, Cost: cost{green: 7, red: 3}},
	{Tier: 3, Prestige: 4, Bonus: white, Cost: cost{black: 7}},
	{Tier: 3, Prestige: 4, Bonus: green, Cost: cost{blue: 7}},
	{Tier: 3, Prestige: 4, Bonus: black, Cost: cost{red: 7}},
	{Tier: 3, Prestige: 4, Bonus: blue, Cost: cost{white: 7}},
	{Tier: 3, Prestige: 4, Bonus: red, Cost: cost{green: 7}},
	{Tier: 3, Prestige: 4, Bonus: white, Cost: cost{black: 6, white: 3, red: 3}},
	{Tier: 3, Prestige: 4, Bonus: green, Cost: cost{blue: 6, green: 3, white: 3}},
	{Tier: 3, Prestige: 4, Bonus: black, Cost: cost{red: 6, black: 3, green: 3}},
	{Tier: 3, Prestige: 4, Bonus: blue, Cost: cost{white: 6, blue: 3, black: 3}},
	{Tier: 3, Prestige: 4, Bonus: red, Cost: cost{green: 6, blue: 3, red: 3}},
	{Tier: 3, Prestige: 3, Bonus: white, Cost: cost{red: 5, blue: 3, green: 3, black: 3}},
	{Tier: 3, Prestige: 3, Bonus: green, Cost: cost{white: 5, blue: 3, red: 3, black: 3}},
	{Tier: 3, Prestige: 3, Bonus: black, Cost: cost{green: 5, white: 3, blue: 3, red: 3}},
	{Tier: 3, Prestige: 3, Bonus: blue, Cost: cost{black: 5, white: 3, green: 3, red: 3}},
	{Tier: 3, Prestige: 3, Bonus: red, Cost: cost{blue: 5, white: 3, green: 3, black: 3}},
}
