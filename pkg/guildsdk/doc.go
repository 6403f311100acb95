/*
Package guildsdk provides a client SDK for the Guildhall membership service.

# Client vs Session

The package is organized around two types:

  - Client: public operations (health, signup, login, invite preview)
  - Session: operations made on behalf of a signed-in user

Create a Client and sign in to obtain a Session:

	client := guildsdk.NewClient("https://guild.example.com")

	session, err := client.Login(ctx, guildsdk.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})

Sessions carry the bearer token returned by signup or login:

	server, err := session.CreateServer(ctx, guildsdk.CreateServerRequest{Name: "the guild"})
	invite, err := session.CreateInvite(ctx, server.ID, guildsdk.CreateInviteRequest{MaxUses: &five})

	// Another user redeems the code
	members, err := other.AcceptInvite(ctx, invite.Code)

# Errors

Every non-success response is returned as an *APIError carrying the HTTP status, the
error code and a description. Compare codes with the ErrorCode* constants or use
errors.Is against the predefined errors, which match on status and code:

	_, err := client.Login(ctx, req)
	if errors.Is(err, guildsdk.ErrInvalidCredentials) {
		// wrong email or password
	}
*/
package guildsdk
