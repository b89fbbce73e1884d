package domain

// LineFailure records one product code that could not be resolved
// during a bulk import, with the reason it failed.
type LineFailure struct {
	Code   string
	Reason string
}

// ImportResult is the outcome of one bulk import: how many line items
// were appended to the order and which codes failed. Partial success
// is a success.
type ImportResult struct {
	Added    int
	Failures []LineFailure
}
