/*
Package interclassesdk is a Go client for the Interclasse registration, login
and tournament service.

# Browser scopes

The service identifies a browser by two signed cookies: a session cookie that
lives as long as the tab, and a device cookie that lives for 30 days. Client
keeps both in a cookie jar, so one Client behaves like one browser:

	c := interclassesdk.NewClient("http://localhost:8080")

	w, err := c.SubmitCredentials(ctx, "ana@escola.com", "segredo1")
	w, err = c.SubmitConfirmation(ctx, "segredo1")
	w, err = c.SubmitProfile(ctx, "Ana", "2008-03-14", "capitao")
	summary, err := c.FinishRegistration(ctx)

	sess, err := c.Login(ctx, "ana@escola.com", "segredo1")

Call ForgetTab to drop the session cookie while keeping the device cookie,
which is what closing a tab does in a real browser.

# Errors

Non-2xx responses are returned as *APIError. Validation failures carry the
per-field messages in Fields:

	var apiErr *interclassesdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == interclassesdk.ErrorCodeValidationFailed {
		fmt.Println(apiErr.Fields["email"])
	}
*/
package interclassesdk
