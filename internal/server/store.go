package server

import (
	"sync"

	"auctioneer/internal/domain"
	"auctioneer/pkg/logger"
)

// AuctionStateStore is the single source of truth for the current auction
// and the server phase. Every read and write happens under one mutex, and
// callers only get composite operations, so phase and auction presence can
// never be observed disagreeing: phase is AwaitingSeller exactly when no
// auction is installed.
type AuctionStateStore struct {
	mu   sync.Mutex
	cond *sync.Cond

	phase           domain.Phase
	current         *domain.Auction
	roundsCompleted int

	log logger.Logger
}

// AppendResult describes a successful bid append.
type AppendResult struct {
	RoundID  string
	ItemName string
	// Complete is true when this append filled the ledger.
	Complete bool
}

// StoreSnapshot is a read-only view for the admin status surface.
type StoreSnapshot struct {
	Phase           string `json:"phase"`
	RoundID         string `json:"round_id,omitempty"`
	ItemName        string `json:"item_name,omitempty"`
	AuctionKind     string `json:"auction_kind,omitempty"`
	BidsRecorded    int    `json:"bids_recorded"`
	TargetBidCount  int    `json:"target_bid_count"`
	RoundsCompleted int    `json:"rounds_completed"`
}

func NewAuctionStateStore(log logger.Logger) *AuctionStateStore {
	s := &AuctionStateStore{
		phase: domain.AwaitingSeller,
		log:   log,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// TryPublishAuction installs the auction and flips the phase to
// AwaitingBuyers in one critical section. It refuses to overwrite an active
// round and reports whether the publish took effect.
func (s *AuctionStateStore) TryPublishAuction(a *domain.Auction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.AwaitingSeller {
		return false
	}

	s.current = a
	s.phase = domain.AwaitingBuyers
	s.log.Info("Auction published",
		"round_id", a.RoundID,
		"kind", a.Kind.String(),
		"reserve_price", a.ReservePrice,
		"target_bid_count", a.TargetBidCount,
		"item_name", a.ItemName)
	return true
}

// AppendBid records one bid for bidderID in a single critical section that
// also checks the completion condition. The append that fills the ledger
// wakes the coordinator waiting in WaitForAllBids.
func (s *AuctionStateStore) AppendBid(bidderID, amount int) (AppendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return AppendResult{}, domain.ErrNoAuction
	}

	if err := s.current.RecordBid(bidderID, amount); err != nil {
		return AppendResult{}, err
	}

	res := AppendResult{
		RoundID:  s.current.RoundID,
		ItemName: s.current.ItemName,
		Complete: s.current.Complete(),
	}
	s.log.Info("Bid recorded",
		"round_id", res.RoundID,
		"bidder_id", bidderID,
		"amount", amount,
		"bids_recorded", s.current.BidCount(),
		"target_bid_count", s.current.TargetBidCount)
	if res.Complete {
		s.cond.Broadcast()
	}
	return res, nil
}

// WaitForAllBids blocks until the current auction's ledger reaches its
// target bid count and returns that auction. The wait is a condition wait
// woken by the completing append, not a poll. Once WaitForAllBids returns,
// further appends are rejected, so the returned ledger is stable.
func (s *AuctionStateStore) WaitForAllBids() *domain.Auction {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.current != nil && !s.current.Complete() {
		s.cond.Wait()
	}
	return s.current
}

// ResetRound discards the current auction and returns the phase to
// AwaitingSeller, making the store ready for the next round.
func (s *AuctionStateStore) ResetRound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.log.Info("Round reset", "round_id", s.current.RoundID)
		s.roundsCompleted++
	}
	s.current = nil
	s.phase = domain.AwaitingSeller
}

func (s *AuctionStateStore) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentTarget reports the target bid count of the active round, if any.
// The acceptor uses it to decide when the buyer registry is full.
func (s *AuctionStateStore) CurrentTarget() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0, false
	}
	return s.current.TargetBidCount, true
}

func (s *AuctionStateStore) Snapshot() StoreSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StoreSnapshot{
		Phase:           s.phase.String(),
		RoundsCompleted: s.roundsCompleted,
	}
	if s.current != nil {
		snap.RoundID = s.current.RoundID
		snap.ItemName = s.current.ItemName
		snap.AuctionKind = s.current.Kind.String()
		snap.BidsRecorded = s.current.BidCount()
		snap.TargetBidCount = s.current.TargetBidCount
	}
	return snap
}
