package server

import (
	"errors"
	"time"

	"auctioneer/internal/domain"
	"auctioneer/internal/protocol"
	"auctioneer/pkg/logger"
)

// BuyerSession collects exactly one valid bid from its connection. Invalid
// lines are rejected and retried without limit; after the bid is recorded
// the session stops reading and leaves the connection to the coordinator.
type BuyerSession struct {
	conn     domain.ClientConn
	bidderID int
	store    *AuctionStateStore
	events   domain.EventPublisher
	log      logger.Logger
}

func NewBuyerSession(conn domain.ClientConn, bidderID int, store *AuctionStateStore,
	events domain.EventPublisher, log logger.Logger) *BuyerSession {
	return &BuyerSession{
		conn:     conn,
		bidderID: bidderID,
		store:    store,
		events:   events,
		log:      log,
	}
}

func (b *BuyerSession) Run() {
	for {
		line, err := b.conn.ReadLine()
		if err != nil {
			b.log.Info("Buyer session ended", "remote_addr", b.conn.RemoteAddr(), "bidder_id", b.bidderID)
			b.conn.Close()
			return
		}

		amount, err := domain.ParseBid(line)
		if err != nil {
			b.conn.SendLine(protocol.MsgInvalidBid)
			continue
		}

		res, err := b.store.AppendBid(b.bidderID, amount)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateBid) {
				// Already satisfied; nothing left to read.
				return
			}
			// Registered buyers always have a ledger slot, so this is a
			// phase-discipline violation, not user input.
			b.log.Error("Failed to record bid", "bidder_id", b.bidderID, "error", err)
			continue
		}

		b.conn.SendLine(protocol.MsgBidReceived)
		b.events.PublishAuctionEvent(&domain.AuctionEvent{
			Type:      domain.BidRecorded,
			RoundID:   res.RoundID,
			ItemName:  res.ItemName,
			BidderID:  b.bidderID,
			Amount:    amount,
			Timestamp: time.Now(),
		})
		// One bid per buyer; the coordinator closes the connection after
		// settlement.
		return
	}
}
