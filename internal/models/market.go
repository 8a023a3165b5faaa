package models

// Quote is the best available back and lay price for a selection.
type Quote struct {
	Back float64 `json:"back" yaml:"back"`
	Lay  float64 `json:"lay" yaml:"lay"`
}

// Valid reports whether both sides carry a price.
func (q Quote) Valid() bool {
	return q.Back > 0 && q.Lay > 0
}

// PriceSize is one level of an exchange price ladder.
type PriceSize struct {
	Price float64 `json:"price" yaml:"price"`
	Size  float64 `json:"size" yaml:"size"`
}

// Runner is a selection in a market with its available ladders, best price first.
type Runner struct {
	Name            string      `json:"runner_name" yaml:"runner_name"`
	AvailableToBack []PriceSize `json:"available_to_back" yaml:"available_to_back"`
	AvailableToLay  []PriceSize `json:"available_to_lay" yaml:"available_to_lay"`
	SelectionID     int64       `json:"selection_id" yaml:"selection_id"`
}

// BestQuote returns the top of both ladders. ok is false if either ladder is empty.
func (r Runner) BestQuote() (Quote, bool) {
	if len(r.AvailableToBack) == 0 || len(r.AvailableToLay) == 0 {
		return Quote{}, false
	}
	return Quote{
		Back: r.AvailableToBack[0].Price,
		Lay:  r.AvailableToLay[0].Price,
	}, true
}
