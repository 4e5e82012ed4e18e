package lookup

import "FitTrack/internal/model"

// SearchResult is the instant-search response, split into common foods
// (detailed via natural-language nutrient lookup) and branded foods
// (detailed via their nix item id).
type SearchResult struct {
	Common  []CommonFood  `json:"common"`
	Branded []BrandedFood `json:"branded"`
}

// CommonFood is a generic search hit.
type CommonFood struct {
	FoodName    string  `json:"food_name"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
}

// BrandedFood is a brand-specific search hit.
type BrandedFood struct {
	FoodName    string  `json:"food_name"`
	BrandName   string  `json:"brand_name"`
	NixItemID   string  `json:"nix_item_id"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"nf_calories"`
}

// foodsResponse is the shared shape of the item-details and
// natural-nutrients endpoints.
type foodsResponse struct {
	Foods []wireFood `json:"foods"`
}

type wireFood struct {
	FoodName     string   `json:"food_name"`
	BrandName    *string  `json:"brand_name"`
	ServingQty   float64  `json:"serving_qty"`
	ServingUnit  string   `json:"serving_unit"`
	Calories     float64  `json:"nf_calories"`
	TotalFat     float64  `json:"nf_total_fat"`
	SaturatedFat *float64 `json:"nf_saturated_fat"`
	Cholesterol  *float64 `json:"nf_cholesterol"`
	Sodium       *float64 `json:"nf_sodium"`
	TotalCarb    float64  `json:"nf_total_carbohydrate"`
	Fiber        *float64 `json:"nf_dietary_fiber"`
	Sugars       *float64 `json:"nf_sugars"`
	Protein      float64  `json:"nf_protein"`
	Potassium    *float64 `json:"nf_potassium"`
}

func (w wireFood) toEntry() model.FoodEntry {
	e := model.FoodEntry{
		Name:         w.FoodName,
		ServingQty:   w.ServingQty,
		ServingUnit:  w.ServingUnit,
		Calories:     w.Calories,
		Fat:          w.TotalFat,
		Carbs:        w.TotalCarb,
		Protein:      w.Protein,
		SaturatedFat: w.SaturatedFat,
		Cholesterol:  w.Cholesterol,
		Sodium:       w.Sodium,
		Fiber:        w.Fiber,
		Sugar:        w.Sugars,
		Potassium:    w.Potassium,
	}
	if w.BrandName != nil {
		e.Brand = *w.BrandName
	}
	return e
}

type exerciseResponse struct {
	Exercises []wireExercise `json:"exercises"`
}

type wireExercise struct {
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Calories    float64 `json:"nf_calories"`
}
