package server

import (
	"errors"
	"net"
	"sync"

	"auctioneer/internal/domain"
	"auctioneer/internal/protocol"
	"auctioneer/pkg/logger"
)

// ConnectionAcceptor owns the listen socket and assigns every inbound
// connection a role for its whole lifetime. Role decisions, buyer
// registration and the registry-full check all run under one mutex inside
// the accept path, so two near-simultaneous buyers can never both take the
// last slot or both miss the handoff to the coordinator.
type ConnectionAcceptor struct {
	listener net.Listener
	store    *AuctionStateStore
	events   domain.EventPublisher
	log      logger.Logger

	mu     sync.Mutex
	seller *SellerSession
	buyers []*BuyerSession
	// bidding marks the window between coordinator handoff and round
	// reset; buyers arriving inside it are turned away.
	bidding bool
}

func NewConnectionAcceptor(listener net.Listener, store *AuctionStateStore,
	events domain.EventPublisher, log logger.Logger) *ConnectionAcceptor {
	return &ConnectionAcceptor{
		listener: listener,
		store:    store,
		events:   events,
		log:      log,
	}
}

// Run accepts connections until the listener is closed.
func (ca *ConnectionAcceptor) Run() {
	ca.log.Info("Auctioneer is ready for hosting auctions", "address", ca.listener.Addr().String())

	for {
		conn, err := ca.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				ca.log.Info("Acceptor stopped")
				return
			}
			ca.log.Error("Failed to accept connection", "error", err)
			continue
		}
		ca.handleConn(NewLineConn(conn))
	}
}

func (ca *ConnectionAcceptor) handleConn(conn domain.ClientConn) {
	ca.mu.Lock()
	defer ca.mu.Unlock()

	// First connection of a round owns the seller slot.
	if ca.seller == nil {
		ca.log.Info("Seller connected", "remote_addr", conn.RemoteAddr())
		ca.seller = NewSellerSession(conn, ca.store, ca.events, ca.log)
		go ca.seller.Run()
		return
	}

	// A seller is negotiating but has not published valid terms yet.
	if ca.store.Phase() == domain.AwaitingSeller {
		ca.log.Info("Rejected connection - seller slot occupied", "remote_addr", conn.RemoteAddr())
		ca.sendAndClose(conn, protocol.MsgServerBusy)
		return
	}

	// The round's buyer list was already handed to a coordinator.
	if ca.bidding {
		ca.log.Info("Rejected connection - bidding in progress", "remote_addr", conn.RemoteAddr())
		ca.sendAndClose(conn, protocol.MsgBiddingOngoing)
		return
	}

	target, ok := ca.store.CurrentTarget()
	if !ok {
		// Phase said AwaitingBuyers moments ago; the only transition away
		// happens inside FinishRound, which needs this mutex.
		ca.log.Error("No auction while awaiting buyers", "remote_addr", conn.RemoteAddr())
		ca.sendAndClose(conn, protocol.MsgServerBusy)
		return
	}

	bidderID := len(ca.buyers)
	ca.log.Info("Buyer connected", "remote_addr", conn.RemoteAddr(), "bidder_id", bidderID)

	// Greeting is sent from the accept path so it is ordered before any
	// coordinator broadcast to the same connection.
	conn.SendLine(protocol.MsgConnected)
	conn.SendLine(protocol.MsgRoleBuyer)

	buyer := NewBuyerSession(conn, bidderID, ca.store, ca.events, ca.log)
	ca.buyers = append(ca.buyers, buyer)
	go buyer.Run()

	if len(ca.buyers) == target {
		coordinator := NewBiddingCoordinator(ca.seller, ca.buyers, ca.store, ca, ca.events, ca.log)
		ca.bidding = true
		// Buyers arriving from here on belong to the next round.
		ca.buyers = nil
		go coordinator.Run()
		return
	}

	conn.SendLine(protocol.MsgWaitingBuyers)
}

// FinishRound is called by the coordinator after all notifications went
// out. Clearing the seller slot, the bidding flag and the store happens
// under the acceptor mutex so no connection can be classified against a
// half-reset round.
func (ca *ConnectionAcceptor) FinishRound() {
	ca.mu.Lock()
	defer ca.mu.Unlock()

	ca.store.ResetRound()
	ca.seller = nil
	ca.buyers = nil
	ca.bidding = false
}

func (ca *ConnectionAcceptor) sendAndClose(conn domain.ClientConn, msg string) {
	if err := conn.SendLine(msg); err != nil {
		ca.log.Error("Failed to send rejection", "remote_addr", conn.RemoteAddr(), "error", err)
	}
	conn.Close()
}
