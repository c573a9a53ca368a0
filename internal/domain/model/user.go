package model

// UserProfile is the per-user state kept by the bot: one preferred genre,
// favorites in insertion order, title→score ratings and the ordered watch
// history. Profiles are keyed by Telegram user ID and never shared.
type UserProfile struct {
	TelegramID int64
	Preference string
	Favorites  []string
	Ratings    map[string]int
	History    []string
}

func NewUserProfile(tgID int64) *UserProfile {
	return &UserProfile{
		TelegramID: tgID,
		Ratings:    map[string]int{},
	}
}

func (p *UserProfile) HasFavorite(title string) bool {
	for _, f := range p.Favorites {
		if f == title {
			return true
		}
	}
	return false
}

func (p *UserProfile) Watched(title string) bool {
	for _, h := range p.History {
		if h == title {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't mutate store internals.
func (p *UserProfile) Clone() *UserProfile {
	cp := &UserProfile{
		TelegramID: p.TelegramID,
		Preference: p.Preference,
		Favorites:  append([]string(nil), p.Favorites...),
		History:    append([]string(nil), p.History...),
		Ratings:    make(map[string]int, len(p.Ratings)),
	}
	for k, v := range p.Ratings {
		cp.Ratings[k] = v
	}
	return cp
}
