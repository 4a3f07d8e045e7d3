package http

import (
	"net/http"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
)

type SessionHandler struct {
	LoginService *service.LoginService
}

func sessionResponse(s domain.Session, loggedIn bool) interclassesdk.SessionResponse {
	if !loggedIn {
		return interclassesdk.SessionResponse{DisplayName: service.GuestName}
	}
	return interclassesdk.SessionResponse{
		LoggedIn:    true,
		DisplayName: s.Name,
		User: &interclassesdk.SessionUser{
			ID:        s.ID,
			Email:     s.Email,
			Name:      s.Name,
			Role:      string(s.Role),
			DOB:       s.DOB,
			CreatedAt: s.CreatedAt,
			IsActive:  s.IsActive,
			HasPhoto:  s.HasPhoto,
			PhotoData: s.Photo(),
		},
	}
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Checks email and password and stores the session for this tab and device.
//	@Description	Every credential check is delayed; unknown email and wrong password are indistinguishable.
//	@Tags			Session
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string							true	"Email address"
//	@Param			password	formData	string							true	"Password"
//	@Success		200			{object}	interclassesdk.SessionResponse	"logged in"
//	@Failure		400			{object}	interclassesdk.ErrorResponse	"missing or malformed fields"
//	@Failure		401			{object}	interclassesdk.ErrorResponse	"invalid credentials"
//	@Failure		409			{object}	interclassesdk.ErrorResponse	"already logged in"
//	@Failure		429			{object}	interclassesdk.ErrorResponse	"rate limit exceeded"
//	@Router			/v1/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, interclassesdk.ErrorCodeInvalidRequest, "Invalid form data")
		return
	}

	sess, err := h.LoginService.Login(r.Context(), scopeOf(r).Holder,
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(sess, true))
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Ends the session. With keep=true only the tab copy is removed and the device stays remembered.
//	@Tags			Session
//	@Param			keep	query	bool	false	"Keep the remembered device session"
//	@Success		204		"logged out"
//	@Failure		500		{object}	interclassesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	holder := scopeOf(r).Holder

	var err error
	if r.URL.Query().Get("keep") == "true" {
		err = holder.Clear(r.Context())
	} else {
		err = holder.Forget(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCurrent godoc
//
//	@Summary		Current Session
//	@Description	Returns the logged-in user, restoring a remembered device session when the tab has none.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	interclassesdk.SessionResponse	"loggedIn is false for guests"
//	@Failure		500	{object}	interclassesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok, err := scopeOf(r).Holder.Restore(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(sess, ok))
}

// HandlePermission godoc
//
//	@Summary		Role Check
//	@Description	Reports whether the current session's role ranks at least the given role.
//	@Tags			Session
//	@Produce		json
//	@Param			role	path		string								true	"juiz, capitao or jogador"
//	@Success		200		{object}	interclassesdk.PermissionResponse	"allowed is false for guests and unknown roles"
//	@Router			/v1/session/permissions/{role} [get].
func (h *SessionHandler) HandlePermission(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(r.PathValue("role"))
	allowed := scopeOf(r).Holder.HasRole(r.Context(), role)
	httpx.WriteJSON(w, http.StatusOK, interclassesdk.PermissionResponse{
		Role:    string(role),
		Allowed: allowed,
	})
}
