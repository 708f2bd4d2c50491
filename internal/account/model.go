package account

import "time"

// Account represents a registered user of the site.
//
// ResetCode and ResetCodeExpires are either both set (a reset is pending) or
// both zero; the repository implementations preserve that pairing.
type Account struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Mobile           string
	PasswordHash     string
	ResetCode        string
	ResetCodeExpires time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ResetPending reports whether the account has an outstanding reset code.
func (a Account) ResetPending() bool {
	return a.ResetCode != ""
}
