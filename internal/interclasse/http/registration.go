package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/imagex"
	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// multipartOverhead leaves room for boundaries and headers around the photo.
const multipartOverhead = 64 * 1024

// RegistrationHandler serves the four-step sign-up wizard.
type RegistrationHandler struct {
	RegistrationService *service.RegistrationService
}

func wizardResponse(w *service.Wizard) interclassesdk.WizardResponse {
	return interclassesdk.WizardResponse{
		Step:     int(w.Step),
		Email:    w.Draft.Email,
		Name:     w.Draft.Name,
		DOB:      w.Draft.DOB,
		Role:     string(w.Draft.Role),
		HasPhoto: w.Draft.PhotoData != "",
	}
}

// HandleGet godoc
//
//	@Summary		Current Registration Draft
//	@Description	Returns the registration draft of this browser session, starting a new one when none exists.
//	@Tags			Registration
//	@Produce		json
//	@Success		200	{object}	interclassesdk.WizardResponse	"step and the fields accepted so far"
//	@Failure		500	{object}	interclassesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/registration [get].
func (h *RegistrationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	wiz, err := h.RegistrationService.Load(r.Context(), scopeOf(r).Session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wizardResponse(wiz))
}

// HandleCredentials godoc
//
//	@Summary		Registration Step 1
//	@Description	Submits email and password. Valid fields are kept even when the step fails.
//	@Tags			Registration
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string							true	"Email address"
//	@Param			password	formData	string							true	"Password, at least 6 characters"
//	@Success		200			{object}	interclassesdk.WizardResponse	"advanced to step 2"
//	@Failure		400			{object}	interclassesdk.ErrorResponse	"error, error_description, fields"
//	@Failure		409			{object}	interclassesdk.ErrorResponse	"step out of order"
//	@Router			/v1/registration/credentials [post].
func (h *RegistrationHandler) HandleCredentials(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wiz *service.Wizard) error {
		return wiz.SubmitCredentials(r.PostFormValue("email"), r.PostFormValue("password"))
	})
}

// HandleConfirmation godoc
//
//	@Summary		Registration Step 2
//	@Description	Confirms the password entered in step 1.
//	@Tags			Registration
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			confirmation	formData	string							true	"Repeated password"
//	@Success		200				{object}	interclassesdk.WizardResponse	"advanced to step 3"
//	@Failure		400				{object}	interclassesdk.ErrorResponse	"error, error_description, fields"
//	@Failure		409				{object}	interclassesdk.ErrorResponse	"step out of order"
//	@Router			/v1/registration/confirmation [post].
func (h *RegistrationHandler) HandleConfirmation(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wiz *service.Wizard) error {
		return wiz.SubmitConfirmation(r.PostFormValue("confirmation"))
	})
}

// HandleProfile godoc
//
//	@Summary		Registration Step 3
//	@Description	Records name, date of birth and role. The wizard stays on step 3 until finished.
//	@Tags			Registration
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			name	formData	string							true	"Full name, at least 2 characters"
//	@Param			dob		formData	string							true	"Date of birth, YYYY-MM-DD, age 10 to 70"
//	@Param			role	formData	string							true	"juiz, capitao or jogador"
//	@Success		200		{object}	interclassesdk.WizardResponse	"profile accepted"
//	@Failure		400		{object}	interclassesdk.ErrorResponse	"error, error_description, fields"
//	@Failure		409		{object}	interclassesdk.ErrorResponse	"step out of order"
//	@Router			/v1/registration/profile [post].
func (h *RegistrationHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wiz *service.Wizard) error {
		return wiz.SubmitProfile(
			r.PostFormValue("name"),
			r.PostFormValue("dob"),
			domain.Role(r.PostFormValue("role")),
		)
	})
}

// HandleBack godoc
//
//	@Summary		Registration Back
//	@Description	Returns to an earlier step without validation.
//	@Tags			Registration
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			step	formData	int								true	"Target step (1 or 2)"
//	@Success		200		{object}	interclassesdk.WizardResponse	"moved back"
//	@Failure		400		{object}	interclassesdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	interclassesdk.ErrorResponse	"target is not an earlier step"
//	@Router			/v1/registration/back [post].
func (h *RegistrationHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	to, err := strconv.Atoi(r.PostFormValue("step"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, interclassesdk.ErrorCodeInvalidRequest, "step must be a number")
		return
	}
	h.step(w, r, func(wiz *service.Wizard) error {
		return wiz.Back(service.Step(to))
	})
}

func (h *RegistrationHandler) step(w http.ResponseWriter, r *http.Request, fn func(*service.Wizard) error) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, interclassesdk.ErrorCodeInvalidRequest, "Invalid form data")
		return
	}

	wiz, err := h.RegistrationService.Apply(r.Context(), scopeOf(r).Session, fn)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wizardResponse(wiz))
}

// HandlePhotoUpload godoc
//
//	@Summary		Attach Profile Photo
//	@Description	Validates and normalises a JPG, PNG or GIF of at most 2MB into a 300x400 JPEG.
//	@Description	A rejected upload also removes any previously attached photo.
//	@Tags			Registration
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			photo	formData	file							true	"Image file"
//	@Success		200		{object}	interclassesdk.PhotoResponse	"normalised photo"
//	@Failure		400		{object}	interclassesdk.ErrorResponse	"missing file"
//	@Failure		409		{object}	interclassesdk.ErrorResponse	"step out of order"
//	@Failure		413		{object}	interclassesdk.ErrorResponse	"file too large"
//	@Failure		415		{object}	interclassesdk.ErrorResponse	"unsupported type"
//	@Failure		422		{object}	interclassesdk.ErrorResponse	"unreadable image"
//	@Router			/v1/registration/photo [post].
func (h *RegistrationHandler) HandlePhotoUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imagex.MaxFileSize+multipartOverhead)

	file, header, err := r.FormFile("photo")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			if err := h.RegistrationService.DiscardPhoto(r.Context(), scopeOf(r).Session); err != nil {
				slogx.FromContext(r.Context()).Warn("failed to drop previous photo", slog.Any("err", err))
			}
			writeServiceError(w, r, imagex.ErrTooLarge)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, interclassesdk.ErrorCodeInvalidRequest, "photo file is required")
		return
	}
	defer file.Close()

	wiz, img, err := h.RegistrationService.AttachPhoto(r.Context(), scopeOf(r).Session, imagex.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, interclassesdk.PhotoResponse{
		Wizard:         wizardResponse(wiz),
		DataURL:        img.DataURL,
		Width:          img.Width,
		Height:         img.Height,
		OriginalSize:   img.OriginalSize,
		CompressedSize: img.CompressedSize,
		AspectWarning:  img.AspectWarning,
	})
}

// HandlePhotoDelete godoc
//
//	@Summary		Remove Profile Photo
//	@Tags			Registration
//	@Produce		json
//	@Success		200	{object}	interclassesdk.WizardResponse	"photo removed"
//	@Failure		500	{object}	interclassesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/registration/photo [delete].
func (h *RegistrationHandler) HandlePhotoDelete(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wiz *service.Wizard) error {
		wiz.ClearPhoto()
		return nil
	})
}

// HandleFinish godoc
//
//	@Summary		Finish Registration
//	@Description	Re-validates the draft and creates the account. The draft is discarded on success.
//	@Tags			Registration
//	@Produce		json
//	@Success		201	{object}	interclassesdk.RegistrationSummary	"created user"
//	@Failure		400	{object}	interclassesdk.ErrorResponse		"error, error_description, fields"
//	@Failure		409	{object}	interclassesdk.ErrorResponse		"duplicate email or step out of order"
//	@Failure		500	{object}	interclassesdk.ErrorResponse		"storage failure"
//	@Router			/v1/registration/finish [post].
func (h *RegistrationHandler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	sum, err := h.RegistrationService.Finish(r.Context(), scopeOf(r).Session)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	u := sum.User
	httpx.WriteJSON(w, http.StatusCreated, interclassesdk.RegistrationSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		RoleLabel: sum.RoleLabel,
		HasPhoto:  u.HasPhoto,
		CreatedAt: u.CreatedAt,
	})
}
