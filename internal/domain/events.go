package domain

import "time"

// AuctionEvent is pushed to observers watching the live event feed.
type AuctionEvent struct {
	Type      AuctionEventType `json:"type"`
	RoundID   string           `json:"round_id"`
	ItemName  string           `json:"item_name,omitempty"`
	BidderID  int              `json:"bidder_id,omitempty"`
	Amount    int              `json:"amount,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

type AuctionEventType string

const (
	AuctionOpened  AuctionEventType = "auction_opened"
	BiddingStarted AuctionEventType = "bidding_started"
	BidRecorded    AuctionEventType = "bid_recorded"
	ItemSold       AuctionEventType = "item_sold"
	ItemUnsold     AuctionEventType = "item_unsold"
	RoundReset     AuctionEventType = "round_reset"
)
