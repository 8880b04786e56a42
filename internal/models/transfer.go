package models

// ImportStats counts what an import wrote.
type ImportStats struct {
	Categories int `json:"categories"`
	Assets     int `json:"assets"`
	Snapshots  int `json:"snapshots"`
	Values     int `json:"values"`
	Summaries  int `json:"summaries"`
}

// ImportResult is returned to the uploader.
type ImportResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Stats   *ImportStats `json:"stats,omitempty"`
}

// ExportFile is a generated workbook.
type ExportFile struct {
	Bytes    []byte `json:"-"`
	Filename string `json:"filename"`
}

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Asset{},
		&Snapshot{},
		&AssetValue{},
		&PortfolioSummary{},
		&CashFlow{},
		&ExchangeRate{},
	}
}
