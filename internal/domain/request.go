package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const maxItemNameLen = 255

// ParseAuctionRequest parses a seller's auction request line of the form
//
//	type reservePrice targetBidCount itemName...
//
// where type is 1 (first-price) or 2 (second-price), reservePrice is a
// non-negative integer, targetBidCount is in [1,9] and the remaining tokens
// joined by single spaces form the item name (at most 255 characters). A
// fresh round ID is assigned to the returned auction.
func ParseAuctionRequest(line string) (*Auction, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: missing auction parameters", ErrInvalidRequest)
	}

	kindNum, err := strconv.Atoi(fields[0])
	if err != nil || (kindNum != int(FirstPrice) && kindNum != int(SecondPrice)) {
		return nil, fmt.Errorf("%w: auction type must be 1 (first-price) or 2 (second-price)", ErrInvalidRequest)
	}

	reserve, err := strconv.Atoi(fields[1])
	if err != nil || reserve < 0 {
		return nil, fmt.Errorf("%w: reserve price must be a non-negative integer", ErrInvalidRequest)
	}

	target, err := strconv.Atoi(fields[2])
	if err != nil || target < 1 || target > 9 {
		return nil, fmt.Errorf("%w: number of bids must be between 1 and 9", ErrInvalidRequest)
	}

	itemName := strings.Join(fields[3:], " ")
	if len(itemName) > maxItemNameLen {
		return nil, fmt.Errorf("%w: item name must be at most %d characters", ErrInvalidRequest, maxItemNameLen)
	}

	return &Auction{
		RoundID:        uuid.NewString(),
		Kind:           AuctionKind(kindNum),
		ReservePrice:   reserve,
		TargetBidCount: target,
		ItemName:       itemName,
	}, nil
}

// ParseBid parses a buyer's bid line as a single positive integer.
func ParseBid(line string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("%w: bid must be a positive integer", ErrInvalidBid)
	}
	return amount, nil
}
