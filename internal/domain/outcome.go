package domain

import "sort"

// Outcome is the settlement of one round.
type Outcome struct {
	Sold     bool
	WinnerID int
	Price    int
}

// DecideOutcome determines the winner and settlement price for a completed
// ledger. Bids are ranked by amount descending with a stable sort, so ties
// go to the earliest arrival. Under FirstPrice the winner pays their own
// bid; under SecondPrice the winner pays the runner-up's amount, or their
// own bid when they are the only bidder. A settlement price below the
// reserve leaves the item unsold.
func DecideOutcome(kind AuctionKind, reservePrice int, bids []Bid) Outcome {
	if len(bids) == 0 {
		return Outcome{Sold: false}
	}

	ranked := make([]Bid, len(bids))
	copy(ranked, bids)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})

	winner := ranked[0]
	price := winner.Amount
	if kind == SecondPrice && len(ranked) > 1 {
		price = ranked[1].Amount
	}

	if price < reservePrice {
		return Outcome{Sold: false}
	}
	return Outcome{Sold: true, WinnerID: winner.BidderID, Price: price}
}

// Outcome settles the auction from a snapshot of its ledger. Caller must
// hold the state store lock, or pass a ledger copy taken under it.
func (a *Auction) Outcome() Outcome {
	return DecideOutcome(a.Kind, a.ReservePrice, a.bids)
}
