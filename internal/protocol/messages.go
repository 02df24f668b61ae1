// Package protocol holds the line-oriented wire message catalog shared by
// the server and the interactive client. Every message travels as UTF-8
// text terminated by a single '\n'; there is no other framing.
package protocol

import "fmt"

const (
	MsgConnected      = "Connected to the Auctioneer server."
	MsgRoleSeller     = "Your role is: [Seller]"
	MsgRoleBuyer      = "Your role is: [Buyer]"
	MsgSubmitRequest  = "Please submit auction request:"
	MsgInvalidRequest = "some wrong input \nServer: invalid auction request!\nPlease submit auction request:"
	MsgRequestOK      = "Auction request received. Now waiting for Buyer."
	MsgWaitingBuyers  = "The Auctioneer is still waiting for other Buyer to connect..."
	MsgBidReceived    = "Server: Bid received. Please wait..."
	MsgInvalidBid     = "Invalid bid. Please submit a positive integer."
	MsgBiddingStarted = "The bidding has started!"
	MsgBuyerLost      = "Unfortunately you did not win in the last round."
	MsgItemUnsold     = "Unfortunately, the item was not sold in the auction."
	MsgGoodbye        = "Disconnecting from the Auctioneer server. Auction is over!"
	MsgServerBusy     = "Server is busy. Try to connect again later."
	MsgBiddingOngoing = "Bidding on-going."
)

// ItemSold is the seller-side settlement notification.
func ItemSold(itemName string, amount int) string {
	return fmt.Sprintf("The item %s sold for $%d.", itemName, amount)
}

// BuyerWon is the winning buyer's settlement notification.
func BuyerWon(itemName string, amount int) string {
	return fmt.Sprintf("You won this item %s! Your payment due is $%d.", itemName, amount)
}
