package domain

import (
	"errors"
	"fmt"
)

// AuctionKind selects the pricing rule for a round. The numeric values
// match the wire protocol (sellers submit 1 or 2).
type AuctionKind int

const (
	FirstPrice  AuctionKind = 1
	SecondPrice AuctionKind = 2
)

func (k AuctionKind) String() string {
	switch k {
	case FirstPrice:
		return "first-price"
	case SecondPrice:
		return "second-price"
	default:
		return "unknown"
	}
}

// Phase gates which role a new connection may assume.
type Phase int

const (
	AwaitingSeller Phase = iota
	AwaitingBuyers
)

func (p Phase) String() string {
	switch p {
	case AwaitingSeller:
		return "awaiting_seller"
	case AwaitingBuyers:
		return "awaiting_buyers"
	default:
		return "unknown"
	}
}

// Bid is one recorded bid. Ledger position encodes arrival order.
type Bid struct {
	BidderID int
	Amount   int
}

var (
	ErrNoAuction      = errors.New("no auction in progress")
	ErrLedgerFull     = errors.New("bid ledger already full")
	ErrDuplicateBid   = errors.New("bidder already has a recorded bid")
	ErrInvalidRequest = errors.New("invalid auction request")
	ErrInvalidBid     = errors.New("invalid bid")
)

// Auction holds the immutable terms of one round plus its append-only bid
// ledger. The ledger is not safe for concurrent use on its own; every
// mutation and read must go through the state store's lock.
type Auction struct {
	RoundID        string
	Kind           AuctionKind
	ReservePrice   int
	TargetBidCount int
	ItemName       string

	bids []Bid
}

// RecordBid appends a bid to the ledger. It enforces the ledger capacity and
// the one-bid-per-bidder rule. Caller must hold the state store lock.
func (a *Auction) RecordBid(bidderID, amount int) error {
	if len(a.bids) >= a.TargetBidCount {
		return ErrLedgerFull
	}
	for _, b := range a.bids {
		if b.BidderID == bidderID {
			return fmt.Errorf("%w: bidder %d", ErrDuplicateBid, bidderID)
		}
	}
	a.bids = append(a.bids, Bid{BidderID: bidderID, Amount: amount})
	return nil
}

// BidCount reports the number of recorded bids. Caller must hold the state
// store lock.
func (a *Auction) BidCount() int {
	return len(a.bids)
}

// Complete reports whether the ledger has reached the target bid count.
// Caller must hold the state store lock.
func (a *Auction) Complete() bool {
	return len(a.bids) == a.TargetBidCount
}

// Bids returns a copy of the ledger in arrival order. Caller must hold the
// state store lock for the duration of the call; the returned slice is the
// caller's to keep.
func (a *Auction) Bids() []Bid {
	out := make([]Bid, len(a.bids))
	copy(out, a.bids)
	return out
}
