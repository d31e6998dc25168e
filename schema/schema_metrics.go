package schema

// FormulaDefinition represents one derived metric for display purposes.
type FormulaDefinition struct {
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Purpose string             `json:"purpose"`
	Formula string             `json:"formula"`
	Params  map[string]float64 `json:"params,omitempty"`
}

// FormulasRenderModel contains all processed data needed for displaying formula definitions.
type FormulasRenderModel struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     FormulaVariant      `json:"variant"`
	Formulas    []FormulaDefinition `json:"formulas"`
}
