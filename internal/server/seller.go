package server

import (
	"time"

	"auctioneer/internal/domain"
	"auctioneer/internal/protocol"
	"auctioneer/pkg/logger"
)

// SellerSession negotiates auction terms with the round's seller. It keeps
// re-prompting on malformed requests and only ever advances the phase
// through the store's composite publish operation.
type SellerSession struct {
	conn   domain.ClientConn
	store  *AuctionStateStore
	events domain.EventPublisher
	log    logger.Logger
}

func NewSellerSession(conn domain.ClientConn, store *AuctionStateStore,
	events domain.EventPublisher, log logger.Logger) *SellerSession {
	return &SellerSession{
		conn:   conn,
		store:  store,
		events: events,
		log:    log,
	}
}

// Run drives the session until the peer disconnects or the coordinator
// closes the connection at the end of the round.
func (s *SellerSession) Run() {
	s.conn.SendLine(protocol.MsgConnected)
	s.conn.SendLine(protocol.MsgRoleSeller)
	s.conn.SendLine(protocol.MsgSubmitRequest)

	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			s.log.Info("Seller session ended", "remote_addr", s.conn.RemoteAddr())
			s.conn.Close()
			return
		}

		if s.store.Phase() != domain.AwaitingSeller {
			// Terms already accepted; nothing more to negotiate.
			s.conn.SendLine(protocol.MsgWaitingBuyers)
			continue
		}

		auction, err := domain.ParseAuctionRequest(line)
		if err != nil {
			s.log.Info("Invalid auction request", "remote_addr", s.conn.RemoteAddr(), "error", err)
			s.conn.SendLine(protocol.MsgInvalidRequest)
			continue
		}

		if !s.store.TryPublishAuction(auction) {
			// Lost the race against another publish; treat as rejected.
			s.conn.SendLine(protocol.MsgInvalidRequest)
			continue
		}

		s.conn.SendLine(protocol.MsgRequestOK)
		s.events.PublishAuctionEvent(&domain.AuctionEvent{
			Type:      domain.AuctionOpened,
			RoundID:   auction.RoundID,
			ItemName:  auction.ItemName,
			Timestamp: time.Now(),
		})
	}
}
