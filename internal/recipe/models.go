package recipe

import "github.com/brewnote/brewnote/internal/sensory"

type BeanInfo struct {
	Origin           string `json:"origin"`
	ProcessingMethod string `json:"processing_method"`
	CoffeeBeanBrand  string `json:"coffee_bean_brand,omitempty"`
	RoastingLevel    string `json:"roasting_level,omitempty"`
}

type BrewingParameters struct {
	BrewingMethod    string  `json:"brewing_method,omitempty"`
	GrinderModel     string  `json:"grinder_model"`
	GrinderUnit      string  `json:"grinder_unit"`
	WaterTemperature float64 `json:"water_temperature,omitempty"` // celsius
	FilteringTools   string  `json:"filtering_tools,omitempty"`
	Turbulence       string  `json:"turbulence,omitempty"`
}

type Measurements struct {
	CoffeeBeans     float64 `json:"coffee_beans"` // grams
	Water           float64 `json:"water"`        // grams
	TDS             float64 `json:"tds,omitempty"`
	ExtractionYield float64 `json:"extraction_yield,omitempty"` // percent
}

type Recipe struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	BeanInfo          BeanInfo                 `json:"bean_info"`
	BrewingParameters BrewingParameters        `json:"brewing_parameters"`
	Measurements      Measurements             `json:"measurements"`
	Sensation         *sensory.SensationRecord `json:"sensation,omitempty"`

	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

// Summary is the list-view projection; the evaluation payload stays behind.
type Summary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Origin           string   `json:"origin"`
	BrewingMethod    string   `json:"brewing_method,omitempty"`
	EvaluationSystem string   `json:"evaluation_system"`
	FinalScore       *float64 `json:"final_score,omitempty"`
	CreatedBy        string   `json:"created_by"`
	CreatedAt        int64    `json:"created_at"`
}

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}
