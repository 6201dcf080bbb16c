package mapper

import (
	apperrors "conference-central/errors"
	"conference-central/model"
)

// NewProfile is the profile created the first time a user is seen.
func NewProfile(user *model.Identity) *model.Profile {
	return &model.Profile{
		Id:                     user.UserId,
		DisplayName:            user.Nickname,
		MainEmail:              user.Email,
		TeeShirtSize:           string(model.TeeShirtNotSpecified),
		ConferenceKeysToAttend: []string{},
		SessionWishlist:        []string{},
	}
}

// ApplyProfileForm copies the user-editable fields and reports whether the
// profile changed.
func ApplyProfileForm(p *model.Profile, f *model.ProfileMiniForm) (bool, error) {
	changed := false
	if f.DisplayName != "" && f.DisplayName != p.DisplayName {
		p.DisplayName = f.DisplayName
		changed = true
	}
	if f.TeeShirtSize != "" {
		size, err := model.ParseTeeShirtSize(f.TeeShirtSize)
		if err != nil {
			return false, apperrors.BadRequest("%v", err)
		}
		if string(size) != p.TeeShirtSize {
			p.TeeShirtSize = string(size)
			changed = true
		}
	}
	return changed, nil
}

func ProfileToForm(p *model.Profile) model.ProfileForm {
	size := p.TeeShirtSize
	if size == "" {
		size = string(model.TeeShirtNotSpecified)
	}
	return model.ProfileForm{
		DisplayName:            p.DisplayName,
		MainEmail:              p.MainEmail,
		TeeShirtSize:           size,
		ConferenceKeysToAttend: nonNil(p.ConferenceKeysToAttend),
		SessionWishlist:        nonNil(p.SessionWishlist),
	}
}

func nonNil(list []string) []string {
	return append([]string{}, list...)
}
