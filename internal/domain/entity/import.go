package entity

import "time"

// ImportStatus per-row outcome of an import run
type ImportStatus string

const (
	ImportPending ImportStatus = "pending"
	ImportSuccess ImportStatus = "success"
	ImportError   ImportStatus = "error"
)

// ImportPhase lifecycle of one uploaded batch
type ImportPhase string

const (
	PhaseParsing    ImportPhase = "parsing"
	PhaseValidating ImportPhase = "validating"
	PhaseReady      ImportPhase = "ready"
	PhaseImporting  ImportPhase = "importing"
	PhaseComplete   ImportPhase = "complete"
)

// ParsedRow one spreadsheet data row. PriceOK/StockOK report whether the
// cell held a number; the raw text is kept for display.
type ParsedRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PriceOK     bool    `json:"-"`
	RawPrice    string  `json:"raw_price,omitempty"`
	Stock       int     `json:"stock"`
	StockOK     bool    `json:"-"`
	RawStock    string  `json:"raw_stock,omitempty"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ValidationResult wraps a row with its verdict and, later, its import outcome
type ValidationResult struct {
	RowNumber int          `json:"row"`
	Row       ParsedRow    `json:"data"`
	IsValid   bool         `json:"is_valid"`
	Errors    []string     `json:"errors"`
	Status    ImportStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	ProductID string       `json:"product_id,omitempty"`
}

// ImportProgress is emitted after every attempted row
type ImportProgress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`

	// Index is the position of the attempted row in the batch
	Index  int              `json:"-"`
	Result ValidationResult `json:"-"`
}

// ImportSummary totals over attempted rows
type ImportSummary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// ImportBatch one uploaded file and everything known about it
type ImportBatch struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	Filename   string             `json:"filename"`
	Phase      ImportPhase        `json:"phase"`
	Rows       []ValidationResult `json:"rows"`
	Progress   ImportProgress     `json:"progress"`
	Summary    ImportSummary      `json:"summary"`
	CreatedAt  time.Time          `json:"created_at"`
	StartedAt  time.Time          `json:"started_at,omitempty"`
	FinishedAt time.Time          `json:"finished_at,omitempty"`
}

// ValidCount number of rows that will be submitted
func (b *ImportBatch) ValidCount() int {
	count := 0
	for _, r := range b.Rows {
		if r.IsValid {
			count++
		}
	}
	return count
}

// Clone deep-copies the batch so a run can own its rows
func (b *ImportBatch) Clone() *ImportBatch {
	cp := *b
	cp.Rows = make([]ValidationResult, len(b.Rows))
	for i, r := range b.Rows {
		r.Errors = append([]string(nil), r.Errors...)
		cp.Rows[i] = r
	}
	return &cp
}

// ImportRun persisted summary of a finished batch
type ImportRun struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Filename   string    `json:"filename"`
	TotalRows  int       `json:"total_rows"`
	ValidRows  int       `json:"valid_rows"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
