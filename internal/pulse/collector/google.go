package collector

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pulsedesk/pulse/internal/config"
)

// googleHTTPClient builds an OAuth-refreshing HTTP client from a stored
// refresh-token triple. Access tokens are minted on demand; nothing is
// cached between pipeline runs.
func googleHTTPClient(ctx context.Context, account config.GoogleAccount) *http.Client {
	conf := &oauth2.Config{
		ClientID:     account.ClientID,
		ClientSecret: account.ClientSecret,
		Endpoint:     google.Endpoint,
	}
	return conf.Client(ctx, &oauth2.Token{RefreshToken: account.RefreshToken})
}
