package words

import (
	"math/rand/v2"
	"time"

	"github.com/robalobadob/texttwist/apps/go-server/internal/daily"
)

// RandomWord returns a uniformly chosen word with n letters, or "" if none exist.
func (d *Dictionary) RandomWord(n int, r *rand.Rand) string {
	list := d.OfLength(n)
	if len(list) == 0 {
		return ""
	}
	return list[r.IntN(len(list))]
}

// DailyWord returns the word with n letters assigned to the UTC date of t,
// or "" if none exist. The choice is stable for a given salt and dictionary.
func (d *Dictionary) DailyWord(n int, t time.Time, salt string) string {
	list := d.OfLength(n)
	if len(list) == 0 {
		return ""
	}
	return list[daily.Index(t, salt, len(list))]
}
