package recipe

import (
	"encoding/json"
	"fmt"
)

// ParseRecipe classifies and decodes one raw descriptor document. It is a
// pure function; directory walking lives in LoadDir. Unrecognized
// discriminators outside the special set are parse failures.
func ParseRecipe(data []byte) (Recipe, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to parse recipe descriptor: %w", err)
	}

	switch head.Type {
	case KindBlasting, KindCampfire, KindSmelting, KindSmoking:
		var r CookingRecipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse %s recipe: %w", head.Type, err)
		}
		r.CookKind = head.Type
		if r.CookTime == 0 {
			r.CookTime = defaultCookTime(head.Type)
		}
		if err := r.Ingredient.validate(); err != nil {
			return nil, fmt.Errorf("%s recipe: %w", head.Type, err)
		}
		if r.Result == "" {
			return nil, fmt.Errorf("%s recipe missing result", head.Type)
		}
		return &r, nil

	case KindStonecutting:
		var r StonecuttingRecipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse stonecutting recipe: %w", err)
		}
		if err := r.Ingredient.validate(); err != nil {
			return nil, fmt.Errorf("stonecutting recipe: %w", err)
		}
		if r.Result == "" {
			return nil, fmt.Errorf("stonecutting recipe missing result")
		}
		if r.Count < 1 {
			return nil, fmt.Errorf("stonecutting recipe count must be positive, got %d", r.Count)
		}
		return &r, nil

	case KindShapeless:
		var r ShapelessRecipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse shapeless recipe: %w", err)
		}
		if err := r.Ingredients.validate(); err != nil {
			return nil, fmt.Errorf("shapeless recipe: %w", err)
		}
		if r.Result.Item == "" {
			return nil, fmt.Errorf("shapeless recipe missing result item")
		}
		return &r, nil

	case KindShaped:
		var r ShapedRecipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse shaped recipe: %w", err)
		}
		if r.Result.Item == "" {
			return nil, fmt.Errorf("shaped recipe missing result item")
		}
		for symbol, ing := range r.Key {
			if err := ing.validate(); err != nil {
				return nil, fmt.Errorf("shaped recipe key %q: %w", string(symbol), err)
			}
		}
		return &r, nil

	case KindSmithing:
		var r SmithingRecipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse smithing recipe: %w", err)
		}
		if err := r.Base.validate(); err != nil {
			return nil, fmt.Errorf("smithing recipe base: %w", err)
		}
		if err := r.Addition.validate(); err != nil {
			return nil, fmt.Errorf("smithing recipe addition: %w", err)
		}
		if r.Result.Item == "" {
			return nil, fmt.Errorf("smithing recipe missing result item")
		}
		return &r, nil
	}

	if _, ok := specialKinds[head.Type]; ok {
		return &SpecialRecipe{Type: head.Type}, nil
	}
	return nil, fmt.Errorf("unrecognized recipe type %q", head.Type)
}

func defaultCookTime(kind Kind) int {
	switch kind {
	case KindSmelting:
		return defaultSmeltingTime
	case KindSmoking:
		return defaultSmokingTime
	case KindBlasting:
		return defaultBlastingTime
	case KindCampfire:
		return defaultCampfireTime
	}
	return 0
}
