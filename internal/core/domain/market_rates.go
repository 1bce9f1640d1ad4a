package domain

import "time"

// MarketRates are current per-gram prices for every metal, in paise.
type MarketRates struct {
	Rates     map[Metal]map[Purity]Money `json:"rates"`
	Source    string                     `json:"source"`
	FetchedAt time.Time                  `json:"fetchedAt"`
}

// SnapshotFor extracts one metal's rates for storing on a transaction.
func (r *MarketRates) SnapshotFor(m Metal) (*MarketRatesSnapshot, bool) {
	if r == nil {
		return nil, false
	}
	rates, ok := r.Rates[m]
	if !ok || len(rates) == 0 {
		return nil, false
	}
	cp := make(map[Purity]Money, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return &MarketRatesSnapshot{Rates: cp, Source: r.Source, FetchedAt: r.FetchedAt}, true
}

// FillDerivedRates adds rates for purities a source did not quote, scaled from the reference grade.
func (r *MarketRates) FillDerivedRates() {
	for metal, rates := range r.Rates {
		profile, err := ProfileFor(metal)
		if err != nil {
			continue
		}
		ref, ok := rates[profile.ReferencePurity()]
		if !ok {
			continue
		}
		for _, p := range profile.Purities {
			if _, have := rates[p]; have {
				continue
			}
			if derived, ok := profile.DeriveRate(ref, p); ok {
				rates[p] = derived
			}
		}
	}
}
