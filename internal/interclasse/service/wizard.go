package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/projetointerclasse/interclasse/pkg/cryptox"
	"github.com/projetointerclasse/interclasse/pkg/imagex"
)

type Step int

const (
	StepCredentials Step = iota + 1
	StepConfirmation
	StepProfile
	StepDone
)

// Field messages shown next to inputs.
const (
	msgEmailInvalid     = "Email inválido"
	msgPasswordShort    = "Senha deve ter pelo menos 6 caracteres"
	msgPasswordMismatch = "As senhas não coincidem"
	msgNameShort        = "Nome deve ter pelo menos 2 caracteres"
	msgDOBInvalid       = "Data de nascimento inválida"
	msgRoleMissing      = "Selecione uma função"
)

// UserCreator persists a finished registration.
type UserCreator interface {
	CreateUser(ctx context.Context, d domain.UserDraft) (domain.User, error)
}

// PasswordHasher turns the step one password into the stored hash and checks
// the confirmation against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// Wizard is the four-step registration state machine. Each submission writes
// the fields that validated into Draft, even when the step as a whole fails.
// The password is only ever held as a hash. A Wizard is not safe for
// concurrent use.
type Wizard struct {
	Step  Step             `json:"step"`
	Draft domain.UserDraft `json:"draft"`

	// Now defaults to time.Now; it anchors the date-of-birth window.
	Now func() time.Time `json:"-"`
	// Hasher must match the record store's hasher. Defaults to an unpeppered
	// cryptox.PasswordHasher.
	Hasher PasswordHasher `json:"-"`
}

func NewWizard() *Wizard {
	return &Wizard{Step: StepCredentials}
}

func (w *Wizard) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Wizard) hasher() PasswordHasher {
	if w.Hasher != nil {
		return w.Hasher
	}
	return cryptox.PasswordHasher{}
}

func (w *Wizard) expect(s Step) error {
	if w.Step != s {
		return ErrStepOutOfOrder
	}
	return nil
}

// SubmitCredentials validates step one and advances when both fields pass.
func (w *Wizard) SubmitCredentials(email, password string) error {
	if err := w.expect(StepCredentials); err != nil {
		return err
	}

	fe := FieldErrors{}
	if ValidEmail(email) {
		w.Draft.Email = email
	} else {
		fe["email"] = msgEmailInvalid
	}
	if utf8.RuneCountInString(password) >= 6 {
		hash, err := w.hasher().Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		w.Draft.Password = ""
		w.Draft.PasswordHash = hash
	} else {
		fe["password"] = msgPasswordShort
	}

	if len(fe) > 0 {
		return fe
	}
	w.Step = StepConfirmation
	return nil
}

// SubmitConfirmation checks the repeated password and advances to the profile step.
func (w *Wizard) SubmitConfirmation(confirmation string) error {
	if err := w.expect(StepConfirmation); err != nil {
		return err
	}
	if confirmation == "" || w.Draft.PasswordHash == "" ||
		w.hasher().Verify(confirmation, w.Draft.PasswordHash) != nil {
		return FieldErrors{"confirmation": msgPasswordMismatch}
	}
	w.Step = StepProfile
	return nil
}

// SubmitProfile records name, date of birth and role. It does not advance;
// Finish does.
func (w *Wizard) SubmitProfile(name, dob string, role domain.Role) error {
	if err := w.expect(StepProfile); err != nil {
		return err
	}

	fe := FieldErrors{}
	if n := strings.TrimSpace(name); utf8.RuneCountInString(n) >= 2 {
		w.Draft.Name = n
	} else {
		fe["name"] = msgNameShort
	}
	if ValidDOB(dob, w.now()) {
		w.Draft.DOB = dob
	} else {
		fe["dob"] = msgDOBInvalid
	}
	if role.Valid() {
		w.Draft.Role = role
	} else {
		fe["role"] = msgRoleMissing
	}
	return fe.orNil()
}

// AttachPhoto normalises f into the draft. A failure drops any previously
// attached photo.
func (w *Wizard) AttachPhoto(ctx context.Context, f imagex.File) (imagex.Normalized, error) {
	if err := w.expect(StepProfile); err != nil {
		return imagex.Normalized{}, err
	}

	img, err := imagex.Normalize(ctx, f)
	if err != nil {
		w.Draft.PhotoData = ""
		return imagex.Normalized{}, err
	}
	w.Draft.PhotoData = img.DataURL
	return img, nil
}

func (w *Wizard) ClearPhoto() { w.Draft.PhotoData = "" }

// Back returns to any earlier step without validation.
func (w *Wizard) Back(to Step) error {
	if w.Step == StepDone || to < StepCredentials || to >= w.Step {
		return ErrStepOutOfOrder
	}
	w.Step = to
	return nil
}

// Finish re-validates the profile, checks the draft is complete and creates
// the user. Any failure leaves the wizard on the profile step.
func (w *Wizard) Finish(ctx context.Context, users UserCreator) (domain.User, error) {
	if err := w.expect(StepProfile); err != nil {
		return domain.User{}, err
	}

	// 1. The date window moves with the clock, so re-check what is stored.
	fe := FieldErrors{}
	if utf8.RuneCountInString(w.Draft.Name) < 2 {
		fe["name"] = msgNameShort
	}
	if !ValidDOB(w.Draft.DOB, w.now()) {
		fe["dob"] = msgDOBInvalid
	}
	if !w.Draft.Role.Valid() {
		fe["role"] = msgRoleMissing
	}
	if len(fe) > 0 {
		return domain.User{}, fe
	}

	// 2. Completeness of the whole draft.
	if err := structFieldErrors(w.Draft); err != nil {
		return domain.User{}, err
	}

	// 3. Persist.
	u, err := users.CreateUser(ctx, w.Draft)
	if err != nil {
		return domain.User{}, err
	}

	w.Step = StepDone
	w.Draft.PasswordHash = ""
	return u, nil
}
