package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstPriceWinnerPaysOwnBid(t *testing.T) {
	bids := []Bid{
		{BidderID: 0, Amount: 150},
		{BidderID: 1, Amount: 120},
	}

	outcome := DecideOutcome(FirstPrice, 100, bids)

	assert.True(t, outcome.Sold)
	assert.Equal(t, 0, outcome.WinnerID)
	assert.Equal(t, 150, outcome.Price)
}

func TestSecondPriceTieBrokenByArrivalOrder(t *testing.T) {
	bids := []Bid{
		{BidderID: 0, Amount: 80},
		{BidderID: 1, Amount: 80},
		{BidderID: 2, Amount: 60},
	}

	outcome := DecideOutcome(SecondPrice, 50, bids)

	assert.True(t, outcome.Sold)
	assert.Equal(t, 0, outcome.WinnerID, "earliest of the tied top bids wins")
	assert.Equal(t, 80, outcome.Price, "second-highest amount is the tied 80")
}

func TestReservePriceNotMet(t *testing.T) {
	bids := []Bid{{BidderID: 0, Amount: 100}}

	outcome := DecideOutcome(FirstPrice, 500, bids)

	assert.False(t, outcome.Sold)
}

func TestSecondPriceSingleBidComparedAgainstReserve(t *testing.T) {
	sold := DecideOutcome(SecondPrice, 50, []Bid{{BidderID: 0, Amount: 60}})
	assert.True(t, sold.Sold)
	assert.Equal(t, 60, sold.Price, "sole bid settles at its own amount")

	unsold := DecideOutcome(SecondPrice, 100, []Bid{{BidderID: 0, Amount: 60}})
	assert.False(t, unsold.Sold)
}

func TestPriceEqualToReserveSells(t *testing.T) {
	outcome := DecideOutcome(FirstPrice, 100, []Bid{{BidderID: 0, Amount: 100}})

	assert.True(t, outcome.Sold)
	assert.Equal(t, 100, outcome.Price)
}

func TestSecondPriceSettlesBelowWinningBid(t *testing.T) {
	bids := []Bid{
		{BidderID: 0, Amount: 60},
		{BidderID: 1, Amount: 90},
		{BidderID: 2, Amount: 70},
	}

	outcome := DecideOutcome(SecondPrice, 50, bids)

	assert.True(t, outcome.Sold)
	assert.Equal(t, 1, outcome.WinnerID)
	assert.Equal(t, 70, outcome.Price)
}

func TestNoBidsMeansUnsold(t *testing.T) {
	outcome := DecideOutcome(FirstPrice, 0, nil)
	assert.False(t, outcome.Sold)
}

func TestFirstPriceTieBrokenByArrivalOrder(t *testing.T) {
	bids := []Bid{
		{BidderID: 0, Amount: 40},
		{BidderID: 1, Amount: 75},
		{BidderID: 2, Amount: 75},
	}

	outcome := DecideOutcome(FirstPrice, 10, bids)

	assert.Equal(t, 1, outcome.WinnerID)
	assert.Equal(t, 75, outcome.Price)
}

func TestRecordBidEnforcesLedgerRules(t *testing.T) {
	a := &Auction{Kind: FirstPrice, TargetBidCount: 2, ItemName: "Vase"}

	assert.NoError(t, a.RecordBid(0, 10))
	assert.ErrorIs(t, a.RecordBid(0, 20), ErrDuplicateBid)
	assert.NoError(t, a.RecordBid(1, 30))
	assert.True(t, a.Complete())
	assert.ErrorIs(t, a.RecordBid(2, 40), ErrLedgerFull)
	assert.Equal(t, []Bid{{BidderID: 0, Amount: 10}, {BidderID: 1, Amount: 30}}, a.Bids())
}
