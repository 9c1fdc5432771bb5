package models

// Token pair returned by login and refresh endpoints.
// Both values are opaque to the client, except that the access token
// is a JWT whose claims may be inspected for display purposes.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// A request may be authenticated only when both tokens are present.
// Anything else counts as logged out.
func (p TokenPair) IsComplete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}
