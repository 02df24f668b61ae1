package server

import (
	"time"

	"auctioneer/internal/domain"
	"auctioneer/internal/protocol"
	"auctioneer/pkg/logger"
)

// BiddingCoordinator runs once per round, owning everything after the buyer
// registry fills: announcing the start of bidding, waiting for the ledger to
// complete, settling the round and tearing the round's connections down.
type BiddingCoordinator struct {
	seller   *SellerSession
	buyers   []*BuyerSession
	store    *AuctionStateStore
	acceptor *ConnectionAcceptor
	events   domain.EventPublisher
	log      logger.Logger
}

func NewBiddingCoordinator(seller *SellerSession, buyers []*BuyerSession,
	store *AuctionStateStore, acceptor *ConnectionAcceptor,
	events domain.EventPublisher, log logger.Logger) *BiddingCoordinator {
	return &BiddingCoordinator{
		seller:   seller,
		buyers:   buyers,
		store:    store,
		acceptor: acceptor,
		events:   events,
		log:      log,
	}
}

func (c *BiddingCoordinator) Run() {
	snap := c.store.Snapshot()
	c.seller.conn.SendLine(protocol.MsgBiddingStarted)
	for _, buyer := range c.buyers {
		buyer.conn.SendLine(protocol.MsgBiddingStarted)
	}
	c.events.PublishAuctionEvent(&domain.AuctionEvent{
		Type:      domain.BiddingStarted,
		RoundID:   snap.RoundID,
		ItemName:  snap.ItemName,
		Timestamp: time.Now(),
	})

	auction := c.store.WaitForAllBids()
	if auction == nil {
		// Only reachable if the store was reset underneath a live round.
		c.log.Error("Coordinator woke without an auction")
		c.acceptor.FinishRound()
		return
	}

	outcome := auction.Outcome()
	c.log.Info("Round settled",
		"round_id", auction.RoundID,
		"item_name", auction.ItemName,
		"sold", outcome.Sold,
		"winner_id", outcome.WinnerID,
		"price", outcome.Price)

	for _, buyer := range c.buyers {
		if outcome.Sold && buyer.bidderID == outcome.WinnerID {
			continue
		}
		buyer.conn.SendLine(protocol.MsgBuyerLost)
		buyer.conn.Close()
	}

	if outcome.Sold {
		c.seller.conn.SendLine(protocol.ItemSold(auction.ItemName, outcome.Price))

		winner := c.buyers[outcome.WinnerID]
		winner.conn.SendLine(protocol.BuyerWon(auction.ItemName, outcome.Price))
		winner.conn.SendLine(protocol.MsgGoodbye)
		winner.conn.Close()
	} else {
		c.seller.conn.SendLine(protocol.MsgItemUnsold)
	}

	c.seller.conn.Close()

	eventType := domain.ItemSold
	if !outcome.Sold {
		eventType = domain.ItemUnsold
	}
	c.events.PublishAuctionEvent(&domain.AuctionEvent{
		Type:      eventType,
		RoundID:   auction.RoundID,
		ItemName:  auction.ItemName,
		BidderID:  outcome.WinnerID,
		Amount:    outcome.Price,
		Timestamp: time.Now(),
	})

	c.acceptor.FinishRound()
	c.events.PublishAuctionEvent(&domain.AuctionEvent{
		Type:      domain.RoundReset,
		RoundID:   auction.RoundID,
		Timestamp: time.Now(),
	})
}
