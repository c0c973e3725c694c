package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/coppermine-games/craftd/internal/game/item"
)

// GridSize is the edge length of the crafting grid.
const GridSize = 3

// Grid is one 3x3 crafting grid in row-major order. The zero ID marks an
// empty cell.
type Grid [GridSize * GridSize]item.ID

// ShapedRecipe matches a 3x3 crafting grid against a pattern of symbols,
// each symbol bound to an ingredient. Matching is translation-invariant:
// the pattern's occupied bounding box may sit at any offset inside the
// grid, with every cell outside it empty. Mirrored arrangements are not
// accepted.
type ShapedRecipe struct {
	Group   string
	Pattern [GridSize][GridSize]byte // 0 = no cell, ' ' = explicitly empty
	Key     map[byte]Ingredient
	Result  ResultStack
}

func (r *ShapedRecipe) Kind() Kind { return KindShaped }

type shapedDescriptor struct {
	Group   string                `json:"group,omitempty"`
	Pattern []string              `json:"pattern"`
	Key     map[string]Ingredient `json:"key"`
	Result  ResultStack           `json:"result"`
}

// UnmarshalJSON decodes the descriptor form: up to three pattern rows of up
// to three symbols each, and a symbol-to-ingredient key. Every non-space
// symbol must be bound in the key.
func (r *ShapedRecipe) UnmarshalJSON(data []byte) error {
	var desc shapedDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return err
	}
	if len(desc.Pattern) == 0 || len(desc.Pattern) > GridSize {
		return fmt.Errorf("shaped pattern must have 1 to %d rows, got %d", GridSize, len(desc.Pattern))
	}

	r.Group = desc.Group
	r.Result = desc.Result
	r.Pattern = [GridSize][GridSize]byte{}
	r.Key = make(map[byte]Ingredient, len(desc.Key))

	for symbol, ing := range desc.Key {
		if len(symbol) != 1 {
			return fmt.Errorf("shaped key symbol %q must be a single character", symbol)
		}
		if symbol == " " {
			return fmt.Errorf("shaped key must not bind the space symbol")
		}
		r.Key[symbol[0]] = ing
	}

	for row, line := range desc.Pattern {
		if len(line) > GridSize {
			return fmt.Errorf("shaped pattern row %d longer than %d symbols", row, GridSize)
		}
		for col := 0; col < len(line); col++ {
			symbol := line[col]
			if symbol != ' ' {
				if _, ok := r.Key[symbol]; !ok {
					return fmt.Errorf("shaped pattern symbol %q has no key entry", string(symbol))
				}
			}
			r.Pattern[row][col] = symbol
		}
	}
	return nil
}

// MarshalJSON emits the descriptor form back.
func (r *ShapedRecipe) MarshalJSON() ([]byte, error) {
	desc := shapedDescriptor{
		Group:  r.Group,
		Result: r.Result,
		Key:    make(map[string]Ingredient, len(r.Key)),
	}
	for symbol, ing := range r.Key {
		desc.Key[string(symbol)] = ing
	}
	for row := 0; row < GridSize; row++ {
		line := make([]byte, 0, GridSize)
		for col := 0; col < GridSize; col++ {
			if r.Pattern[row][col] == 0 {
				break
			}
			line = append(line, r.Pattern[row][col])
		}
		if len(line) == 0 {
			break
		}
		desc.Pattern = append(desc.Pattern, string(line))
	}
	return json.Marshal(desc)
}

// bounds returns the occupied bounding box of the pattern (inclusive), or
// ok=false when the pattern has no bound symbols.
func (r *ShapedRecipe) bounds() (top, left, bottom, right int, ok bool) {
	top, left = GridSize, GridSize
	bottom, right = -1, -1
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			symbol := r.Pattern[row][col]
			if symbol == 0 || symbol == ' ' {
				continue
			}
			if row < top {
				top = row
			}
			if row > bottom {
				bottom = row
			}
			if col < left {
				left = col
			}
			if col > right {
				right = col
			}
		}
	}
	return top, left, bottom, right, bottom >= 0
}

// Matches reports whether the grid holds exactly this recipe's shape at
// some translation offset.
func (r *ShapedRecipe) Matches(grid Grid, tags *item.TagRegistry) bool {
	top, left, bottom, right, ok := r.bounds()
	if !ok {
		// Degenerate all-empty pattern: only an empty grid satisfies it.
		for _, cell := range grid {
			if cell != "" {
				return false
			}
		}
		return true
	}

	height := bottom - top + 1
	width := right - left + 1
	for offRow := 0; offRow <= GridSize-height; offRow++ {
		for offCol := 0; offCol <= GridSize-width; offCol++ {
			if r.matchesAt(grid, top, left, height, width, offRow, offCol, tags) {
				return true
			}
		}
	}
	return false
}

func (r *ShapedRecipe) matchesAt(grid Grid, top, left, height, width, offRow, offCol int, tags *item.TagRegistry) bool {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := grid[row*GridSize+col]

			inBox := row >= offRow && row < offRow+height && col >= offCol && col < offCol+width
			if !inBox {
				if cell != "" {
					return false
				}
				continue
			}

			symbol := r.Pattern[top+row-offRow][left+col-offCol]
			if symbol == 0 || symbol == ' ' {
				if cell != "" {
					return false
				}
				continue
			}
			if cell == "" || !r.Key[symbol].Matches(cell, tags) {
				return false
			}
		}
	}
	return true
}
