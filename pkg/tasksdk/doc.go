/*
Package tasksdk provides a client SDK for the tasks service.

# SDKClient vs Session

The package is organised around two types:

  - SDKClient: public operations (health, register, login) and session creation
  - Session: operations on behalf of a logged-in user

Create an SDKClient and log in to obtain a Session:

	client := tasksdk.NewSDKClient("https://tasks.example.com")

	health, err := client.GetLiveness(ctx)

	session, err := client.Login(ctx, tasksdk.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})

A Session presents its token as the "token" cookie, the way a browser would:

	me, err := session.Me(ctx)
	task, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Write docs"})

# Errors

Every non-2xx response is returned as *APIError carrying the status code and
the server's message:

	_, err := session.ListUsers(ctx)
	var apiErr *tasksdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		// "Only creators can do this!"
	}
*/
package tasksdk
