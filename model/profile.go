package model

type Profile struct {
	Id                     string   `json:"_id" bson:"_id"`
	DisplayName            string   `json:"display_name" bson:"display_name"`
	MainEmail              string   `json:"main_email" bson:"main_email"`
	TeeShirtSize           string   `json:"tee_shirt_size" bson:"tee_shirt_size"`
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend" bson:"conference_keys_to_attend"`
	SessionWishlist        []string `json:"session_wishlist" bson:"session_wishlist"`
}

func (p Profile) Key() *Key {
	return NewProfileKey(p.Id)
}

func (p Profile) IsAttending(websafeConferenceKey string) bool {
	return contains(p.ConferenceKeysToAttend, websafeConferenceKey)
}

func (p Profile) HasInWishlist(websafeSessionKey string) bool {
	return contains(p.SessionWishlist, websafeSessionKey)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// remove returns list without any occurrence of value and whether value was found.
func remove(list []string, value string) ([]string, bool) {
	out := make([]string, 0, len(list))
	found := false
	for _, item := range list {
		if item == value {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

func (p *Profile) RemoveConference(websafeConferenceKey string) bool {
	var found bool
	p.ConferenceKeysToAttend, found = remove(p.ConferenceKeysToAttend, websafeConferenceKey)
	return found
}

func (p *Profile) RemoveFromWishlist(websafeSessionKey string) bool {
	var found bool
	p.SessionWishlist, found = remove(p.SessionWishlist, websafeSessionKey)
	return found
}
