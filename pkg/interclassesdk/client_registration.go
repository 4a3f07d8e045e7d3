package interclassesdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
)

// GetRegistration returns the current draft, starting a new one if needed.
func (c *Client) GetRegistration(ctx context.Context) (*WizardResponse, error) {
	var w WizardResponse
	if err := c.getJSON(ctx, "/v1/registration", &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// SubmitCredentials sends step one.
func (c *Client) SubmitCredentials(ctx context.Context, email, password string) (*WizardResponse, error) {
	return c.wizardStep(ctx, "/v1/registration/credentials", url.Values{
		"email":    {email},
		"password": {password},
	})
}

// SubmitConfirmation sends step two.
func (c *Client) SubmitConfirmation(ctx context.Context, confirmation string) (*WizardResponse, error) {
	return c.wizardStep(ctx, "/v1/registration/confirmation", url.Values{
		"confirmation": {confirmation},
	})
}

// SubmitProfile sends step three. role is one of "juiz", "capitao", "jogador".
func (c *Client) SubmitProfile(ctx context.Context, name, dob, role string) (*WizardResponse, error) {
	return c.wizardStep(ctx, "/v1/registration/profile", url.Values{
		"name": {name},
		"dob":  {dob},
		"role": {role},
	})
}

// Back returns the draft to an earlier step.
func (c *Client) Back(ctx context.Context, step int) (*WizardResponse, error) {
	return c.wizardStep(ctx, "/v1/registration/back", url.Values{
		"step": {strconv.Itoa(step)},
	})
}

func (c *Client) wizardStep(ctx context.Context, path string, form url.Values) (*WizardResponse, error) {
	resp, err := c.postForm(ctx, path, form)
	if err != nil {
		return nil, err
	}
	var w WizardResponse
	if err := decodeJSON(resp, &w, http.StatusOK); err != nil {
		return nil, err
	}
	return &w, nil
}

// UploadPhoto attaches a profile photo to the draft.
func (c *Client) UploadPhoto(ctx context.Context, filename, contentType string, data []byte) (*PhotoResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/registration/photo", &buf, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var p PhotoResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// RemovePhoto clears the draft's photo.
func (c *Client) RemovePhoto(ctx context.Context) (*WizardResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/registration/photo", nil, nil)
	if err != nil {
		return nil, err
	}
	var w WizardResponse
	if err := decodeJSON(resp, &w, http.StatusOK); err != nil {
		return nil, err
	}
	return &w, nil
}

// FinishRegistration creates the account from the draft.
func (c *Client) FinishRegistration(ctx context.Context) (*RegistrationSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/registration/finish", nil, nil)
	if err != nil {
		return nil, err
	}
	var s RegistrationSummary
	if err := decodeJSON(resp, &s, http.StatusCreated); err != nil {
		return nil, err
	}
	return &s, nil
}
