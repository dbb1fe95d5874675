package marketdata

// Service composes the quote/history client and the screener into the
// full Provider surface the scanner consumes.
type Service struct {
	*Client
	*Screener
}

// NewService bundles a client and a screener.
func NewService(client *Client, screener *Screener) *Service {
	return &Service{Client: client, Screener: screener}
}
