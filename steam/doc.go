// Package steam provides a client for the Steam Web API.
//
// The client is split in two layers. Client.GetRequest is the transport: it
// appends the API key, keeps the caller's parameter order, and sorts the
// outcome into a small error taxonomy. Resource methods such as
// Client.GetUserLibrary know one endpoint and its wire shape and translate
// the raw JSON into domain types.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := steam.NewClient(apiKey, logger, steam.WithTimeout(10*time.Second))
//
//	library, err := client.GetUserLibrary(ctx, "76561197960287930")
//	if err != nil {
//		if errors.Is(err, steam.ErrNoData) {
//			// private or empty profile, or an unexpected payload
//		}
//		return err
//	}
//
// # Error Handling
//
// Every error returned by the client is an *APIError carrying a Kind:
//
//   - KindUnauthorized: 401, invalid key or private data
//   - KindRejected: any other non-200 status
//   - KindTransportFailure: no response at all
//   - KindTimeout: the deadline passed
//   - KindUnexpectedSchema: the body did not decode into the wire shape
//   - KindEmptyOrPrivate: the payload was absent or empty
//
// The first four match ErrFailedRequest with errors.Is, the last two match
// ErrNoData.
package steam
