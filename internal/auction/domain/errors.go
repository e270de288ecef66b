package domain

import "errors"

var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNilAuction      = errors.New("auction is required")
	ErrMissingOwner    = errors.New("auction owner is required")
	ErrMissingBidder   = errors.New("bid bidder is required")
	ErrForeignBid      = errors.New("bid belongs to another auction")
	ErrAlreadyExists   = errors.New("auction already exists")
)
