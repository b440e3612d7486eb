package domain

import "errors"

var (
	// ErrSourceUnavailable means raw records could not be retrieved
	ErrSourceUnavailable = errors.New("record source unavailable")
	// ErrDecode means a retrieved payload did not match the expected shape
	ErrDecode = errors.New("record payload could not be decoded")
	// ErrConfig marks programmer errors such as an empty image pool or category table
	ErrConfig = errors.New("invalid catalog configuration")
	// ErrParse means a price string is not a non-negative decimal
	ErrParse = errors.New("invalid price")

	ErrProductNotFound = errors.New("product not found")
)
